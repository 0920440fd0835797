// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad input: arguments, flags, ids or a missing owner.
	UserError = 1

	// AuthError indicates an unusable config file or stored token.
	AuthError = 2

	// BackendError indicates an API or network failure, including a report that never became ready.
	BackendError = 3
)
