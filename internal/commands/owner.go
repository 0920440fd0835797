package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/state"
)

func init() {
	Register(&OwnerCmd{})
}

// OwnerCmd shows or sets the default owner.
type OwnerCmd struct{}

func (c *OwnerCmd) Name() string       { return "owner" }
func (c *OwnerCmd) Aliases() []string  { return nil }
func (c *OwnerCmd) Synopsis() string   { return "Show or set the default owner id" }
func (c *OwnerCmd) Usage() string      { return "taskboard owner [<id>]" }
func (c *OwnerCmd) NeedsBackend() bool { return false }

func (c *OwnerCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OwnerCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	switch len(args) {
	case 0:
		fmt.Fprintln(out, cfg.OwnerID)
		return exitcode.Success
	case 1:
	default:
		output.FormatError(errOut, "too many arguments")
		return exitcode.UserError
	}

	owner := strings.TrimSpace(args[0])
	if owner == "" {
		return fail(errOut, state.MsgOwnerRequired)
	}
	if _, err := strconv.ParseInt(owner, 10, 64); err != nil {
		return fail(errOut, state.MsgOwnerNotNumeric)
	}

	cfg.OwnerID = owner
	if err := cfg.Save(); err != nil {
		output.FormatError(errOut, fmt.Sprintf("failed to save config: %v", err))
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
