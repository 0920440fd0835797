// Package state holds the client-side stores for projects, tasks and reports.
//
// A store owns its data, loading flags and error messages. Actions never
// return failures: every error is normalized to a message and kept on the
// store, where the caller reads it through Snapshot. The store mutex is held
// only while fields are read or written, never across a backend call or the
// report poll delay, so actions started from different goroutines interleave
// at those points.
package state

import (
	"log/slog"
)

// Messages set for local precondition failures and poll exhaustion.
const (
	MsgOwnerRequired         = "Owner ID is required."
	MsgOwnerRequiredToCreate = "Owner ID is required to create a project."
	MsgOwnerNotNumeric       = "Owner ID must be a number."
	MsgReportStillPending    = "Report is still pending after multiple attempts."
)

// Option configures a store.
type Option func(*options)

type options struct {
	log      *slog.Logger
	onChange func()
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithOnChange registers a callback invoked after every state change.
// The callback runs without the store lock held and may call Snapshot.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) changed() {
	if o.onChange != nil {
		o.onChange()
	}
}
