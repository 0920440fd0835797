package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                            List the default owner's projects
  taskboard projects [common flags] [--owner <id>]     List an owner's projects
  taskboard createproject [common flags] [--owner <id>] <name...>
  taskboard addproject [common flags] [--owner <id>] <name...>
  taskboard tasks [common flags] <project-id>
  taskboard add [common flags] --project <id> [--description <text>] [--assignee <user-id>] <title...>
  taskboard create [common flags] --project <id> [--description <text>] [--assignee <user-id>] <title...>
  taskboard status [common flags] [--project <id>] <task-id> <todo|in_progress|done>
  taskboard done [common flags] [--project <id>] <task-id>
  taskboard report [common flags] <project-id>
  taskboard owner [common flags] [<id>]
  taskboard login [common flags] [--token <token>]
  taskboard logout [common flags]
  taskboard help
  taskboard version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKBOARD_API_BASE_URL   API base URL (default /api)
  TASKBOARD_API_ORIGIN     Origin for a relative base URL (default http://localhost)
  TASKBOARD_OWNER_ID       Default owner id (default 1)
`
