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
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command.
type TasksCmd struct{}

func (c *TasksCmd) Name() string       { return "tasks" }
func (c *TasksCmd) Aliases() []string  { return nil }
func (c *TasksCmd) Synopsis() string   { return "List the tasks of a project" }
func (c *TasksCmd) Usage() string      { return "taskboard tasks <project-id>" }
func (c *TasksCmd) NeedsBackend() bool { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		output.FormatError(errOut, "too many arguments")
		return exitcode.UserError
	}
	projectID, err := parseID("project id", firstArg(args))
	if err != nil {
		return userError(errOut, err)
	}

	store := state.NewTasksStore(svc, svc, storeOptions(cfg)...)
	store.FetchTasks(ctx, projectID)

	snap := store.Snapshot()
	if snap.TasksFailed {
		return fail(errOut, snap.TasksErr)
	}

	if len(snap.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	for _, t := range snap.Tasks {
		output.FormatTask(out, t)
	}
	return exitcode.Success
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
