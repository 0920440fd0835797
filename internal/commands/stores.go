package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/state"
)

// storeOptions returns the options shared by every store a command builds.
func storeOptions(cfg *config.Config, extra ...state.Option) []state.Option {
	return append([]state.Option{state.WithLogger(cfg.Log)}, extra...)
}

// MsgRequestFailed is printed when a failed request left no error message,
// as happens when the backend answers with an empty body.
const MsgRequestFailed = "request failed"

// fail prints a store error message and maps it to an exit code.
// Local precondition messages are user errors; everything else came from the API.
func fail(errOut io.Writer, msg string) int {
	if msg == "" {
		msg = MsgRequestFailed
	}
	output.FormatError(errOut, msg)
	switch msg {
	case state.MsgOwnerRequired, state.MsgOwnerRequiredToCreate, state.MsgOwnerNotNumeric:
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// parseID parses a positive numeric id argument.
func parseID(what, arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%s required", what)
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s: %s", what, arg)
	}
	return id, nil
}

// userError prints err and returns the user error exit code.
func userError(errOut io.Writer, err error) int {
	output.FormatError(errOut, err.Error())
	return exitcode.UserError
}
