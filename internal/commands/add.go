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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	project     string
	description string
	assignee    string
}

// SetProject sets the project flag (for testing).
func (c *AddCmd) SetProject(project string) {
	c.project = project
}

// SetAssignee sets the assignee flag (for testing).
func (c *AddCmd) SetAssignee(assignee string) {
	c.assignee = assignee
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add --project <id> [--description <text>] [--assignee <user-id>] <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.project, "project", "", "")
	fs.StringVar(&c.project, "p", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.assignee, "assignee", "", "")
	fs.StringVar(&c.assignee, "a", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		output.FormatError(errOut, "title required")
		return exitcode.UserError
	}

	projectID, err := parseID("project id", c.project)
	if err != nil {
		return userError(errOut, err)
	}

	in := state.TaskInput{Title: title, Description: c.description}
	if c.assignee != "" {
		id, err := parseID("assignee id", c.assignee)
		if err != nil {
			return userError(errOut, err)
		}
		in.AssigneeID = &id
	}

	store := state.NewTasksStore(svc, svc, storeOptions(cfg)...)
	task := store.CreateTask(ctx, projectID, in)
	if task == nil {
		return fail(errOut, store.Snapshot().TasksErr)
	}

	output.FormatTask(out, *task)
	return exitcode.Success
}
