package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sync"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/state"
)

func init() {
	Register(&ReportCmd{})
}

// ReportCmd implements the report command.
type ReportCmd struct{}

func (c *ReportCmd) Name() string       { return "report" }
func (c *ReportCmd) Aliases() []string  { return nil }
func (c *ReportCmd) Synopsis() string   { return "Generate a daily summary for a project" }
func (c *ReportCmd) Usage() string      { return "taskboard report <project-id>" }
func (c *ReportCmd) NeedsBackend() bool { return true }

func (c *ReportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		output.FormatError(errOut, "too many arguments")
		return exitcode.UserError
	}
	projectID, err := parseID("project id", firstArg(args))
	if err != nil {
		return userError(errOut, err)
	}

	var store *state.TasksStore
	progress := &reportProgress{w: errOut, quiet: cfg.Quiet}
	store = state.NewTasksStore(svc, svc, storeOptions(cfg, state.WithOnChange(func() {
		progress.update(store.Snapshot())
	}))...)

	store.GenerateReportForProject(ctx, projectID)

	snap := store.Snapshot()
	if snap.Report != nil {
		output.FormatReport(out, *snap.Report)
	}
	if snap.ReportFailed {
		return fail(errOut, snap.ReportErr)
	}
	return exitcode.Success
}

// reportProgress prints a line whenever the report's status changes while polling.
type reportProgress struct {
	w     io.Writer
	quiet bool

	mu   sync.Mutex
	last service.ReportStatus
}

func (p *reportProgress) update(snap state.TasksSnapshot) {
	if p.quiet || snap.Report == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if snap.Report.Status == p.last {
		return
	}
	p.last = snap.Report.Status
	if snap.Report.Status == service.ReportPending {
		fmt.Fprintf(p.w, "report #%d pending, waiting...\n", snap.Report.ID)
	}
}
