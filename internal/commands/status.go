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
	Register(&StatusCmd{})
	Register(&DoneCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct {
	project string
}

// SetProject sets the project flag (for testing).
func (c *StatusCmd) SetProject(project string) {
	c.project = project
}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return nil }
func (c *StatusCmd) Synopsis() string   { return "Change the status of a task" }
func (c *StatusCmd) Usage() string      { return "taskboard status [--project <id>] <task-id> <todo|in_progress|done>" }
func (c *StatusCmd) NeedsBackend() bool { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.project, "project", "", "")
	fs.StringVar(&c.project, "p", "", "")
}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		output.FormatError(errOut, "usage: "+c.Usage())
		return exitcode.UserError
	}
	status := service.TaskStatus(args[1])
	if !status.Valid() {
		output.FormatError(errOut, fmt.Sprintf("invalid status: %s (want todo, in_progress or done)", args[1]))
		return exitcode.UserError
	}
	return runStatus(ctx, cfg, svc, c.project, args[0], status, out, errOut)
}

// DoneCmd marks a task done.
type DoneCmd struct {
	project string
}

// SetProject sets the project flag (for testing).
func (c *DoneCmd) SetProject(project string) {
	c.project = project
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task done" }
func (c *DoneCmd) Usage() string      { return "taskboard done [--project <id>] <task-id>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.project, "project", "", "")
	fs.StringVar(&c.project, "p", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		output.FormatError(errOut, "too many arguments")
		return exitcode.UserError
	}
	return runStatus(ctx, cfg, svc, c.project, firstArg(args), service.TaskDone, out, errOut)
}

// runStatus is the shared implementation for status and done.
// With a project, the project's tasks are loaded first and the updated list is printed;
// otherwise only the updated task is printed.
func runStatus(ctx context.Context, cfg *config.Config, svc service.Service, project, taskArg string, status service.TaskStatus, out, errOut io.Writer) int {
	taskID, err := parseID("task id", taskArg)
	if err != nil {
		return userError(errOut, err)
	}

	store := state.NewTasksStore(svc, svc, storeOptions(cfg)...)

	if project != "" {
		projectID, err := parseID("project id", project)
		if err != nil {
			return userError(errOut, err)
		}
		store.FetchTasks(ctx, projectID)
		if snap := store.Snapshot(); snap.TasksFailed {
			return fail(errOut, snap.TasksErr)
		}
	}

	task := store.UpdateTaskStatus(ctx, taskID, status)
	if task == nil {
		return fail(errOut, store.Snapshot().TasksErr)
	}

	if project == "" {
		output.FormatTask(out, *task)
		return exitcode.Success
	}
	for _, t := range store.Snapshot().Tasks {
		output.FormatTask(out, t)
	}
	return exitcode.Success
}
