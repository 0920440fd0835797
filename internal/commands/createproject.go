package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/state"
)

func init() {
	Register(&CreateProjectCmd{})
}

// CreateProjectCmd implements the createproject command.
type CreateProjectCmd struct {
	owner string
}

func (c *CreateProjectCmd) Name() string       { return "createproject" }
func (c *CreateProjectCmd) Aliases() []string  { return []string{"addproject"} }
func (c *CreateProjectCmd) Synopsis() string   { return "Create a project" }
func (c *CreateProjectCmd) Usage() string      { return "taskboard createproject [--owner <id>] <name...>" }
func (c *CreateProjectCmd) NeedsBackend() bool { return true }

func (c *CreateProjectCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.owner, "owner", "", "")
	fs.StringVar(&c.owner, "o", "", "")
}

func (c *CreateProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		output.FormatError(errOut, "project name required")
		return exitcode.UserError
	}

	store := state.NewProjectsStore(svc, storeOptions(cfg)...)
	store.SetOwner(ownerFor(cfg, c.owner))

	project := store.CreateProject(ctx, name)
	if project == nil {
		return fail(errOut, store.Snapshot().Err)
	}

	output.FormatProject(out, *project)
	return exitcode.Success
}
