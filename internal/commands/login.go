package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"taskboard/internal/backend/httpapi"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

// Stdin is read by login when no --token flag is given.
var Stdin io.Reader = os.Stdin

func init() {
	Register(&LoginCmd{})
}

// LoginCmd stores an API token.
type LoginCmd struct {
	token string
}

// SetToken sets the token flag (for testing).
func (c *LoginCmd) SetToken(token string) {
	c.token = token
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Store an API token" }
func (c *LoginCmd) Usage() string      { return "taskboard login [--token <token>]" }
func (c *LoginCmd) NeedsBackend() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	token := strings.TrimSpace(c.token)
	if token == "" {
		if !cfg.Quiet {
			fmt.Fprintln(errOut, "Paste the API token and press Enter:")
		}
		line, err := bufio.NewReader(Stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			output.FormatError(errOut, fmt.Sprintf("failed to read token: %v", err))
			return exitcode.AuthError
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		output.FormatError(errOut, "token required")
		return exitcode.UserError
	}

	if err := cfg.EnsureDir(); err != nil {
		output.FormatError(errOut, fmt.Sprintf("failed to create config directory: %v", err))
		return exitcode.AuthError
	}

	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if err := httpapi.WriteToken(cfg.TokenPath(), tok); err != nil {
		output.FormatError(errOut, fmt.Sprintf("failed to save token: %v", err))
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
