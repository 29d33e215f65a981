package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-catalog-server/audit"
)

var _ audit.Sink = (*AuditSink)(nil)

// AuditSink writes admin mutations and server errors to the audit tables.
// Inserts are best-effort: a failure is logged and swallowed so it can
// never fail the operation being audited.
type AuditSink struct {
	pool *pgxpool.Pool
}

func NewAuditSink(pool *pgxpool.Pool) *AuditSink {
	return &AuditSink{pool: pool}
}

func (s *AuditSink) RecordMutation(ctx context.Context, actorID int64, actionType, targetTable string, targetID int64, details string) {
	query := `
		INSERT INTO updates (admin_id, action_type, target_table, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := s.pool.Exec(ctx, query, actorID, actionType, targetTable, targetID, nullable(details)); err != nil {
		log.Error().Err(err).
			Str("action", actionType).
			Str("table", targetTable).
			Msg("failed to record mutation to audit db")
	}
}

func (s *AuditSink) RecordError(ctx context.Context, message, stack string) {
	query := `
		INSERT INTO errors (error_message, error_stack)
		VALUES ($1, $2)
	`

	if _, err := s.pool.Exec(ctx, query, message, nullable(stack)); err != nil {
		log.Error().Err(err).Msg("failed to record error to audit db")
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
