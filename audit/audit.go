// Package audit records mutating admin actions and server-side errors to
// a best-effort sink. A sink failure must never fail the operation that
// triggered it, so the interface has no error returns; implementations
// log their own failures.
package audit

import "context"

type Sink interface {
	// RecordMutation logs an admin mutation (update/delete) against a
	// target row.
	RecordMutation(ctx context.Context, actorID int64, actionType, targetTable string, targetID int64, details string)

	// RecordError logs a server-side error with an optional stack trace.
	RecordError(ctx context.Context, message, stack string)
}

var _ Sink = NopSink{}

// NopSink discards everything. Used when no audit database is configured
// and in tests.
type NopSink struct{}

func (NopSink) RecordMutation(context.Context, int64, string, string, int64, string) {}

func (NopSink) RecordError(context.Context, string, string) {}
