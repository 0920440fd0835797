package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/state"
)

func init() {
	Register(&ProjectsCmd{})
}

// ProjectsCmd implements the projects command.
// Handles both `taskboard` (no args) and `taskboard projects [--owner <id>]`.
type ProjectsCmd struct {
	owner string
}

// SetOwner sets the owner flag (for testing).
func (c *ProjectsCmd) SetOwner(owner string) {
	c.owner = owner
}

func (c *ProjectsCmd) Name() string       { return "projects" }
func (c *ProjectsCmd) Aliases() []string  { return nil }
func (c *ProjectsCmd) Synopsis() string   { return "List the owner's projects" }
func (c *ProjectsCmd) Usage() string      { return "taskboard projects [--owner <id>]" }
func (c *ProjectsCmd) NeedsBackend() bool { return true }

func (c *ProjectsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.owner, "owner", "", "")
	fs.StringVar(&c.owner, "o", "", "")
}

func (c *ProjectsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := state.NewProjectsStore(svc, storeOptions(cfg)...)
	store.SetOwner(ownerFor(cfg, c.owner))
	store.FetchProjects(ctx)

	snap := store.Snapshot()
	if snap.Failed {
		return fail(errOut, snap.Err)
	}

	if len(snap.Projects) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no projects found")
		}
		return exitcode.Success
	}
	for _, p := range snap.Projects {
		output.FormatProject(out, p)
	}
	return exitcode.Success
}

// ownerFor returns the owner flag when given, otherwise the configured owner.
func ownerFor(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.OwnerID
}
