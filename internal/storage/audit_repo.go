package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"paperbrief/internal/providers"
)

// AuditRepo persists one row per provider call. It implements
// providers.CallRecorder so the generation client can record attempts without
// knowing about Postgres.
type AuditRepo struct {
	db    *DB
	runID string
}

var _ providers.CallRecorder = (*AuditRepo)(nil)

func NewAuditRepo(db *DB, runID string) *AuditRepo {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &AuditRepo{db: db, runID: runID}
}

// RunID identifies all calls belonging to one CLI invocation.
func (r *AuditRepo) RunID() string { return r.runID }

func (r *AuditRepo) RecordCall(ctx context.Context, rec providers.CallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO generation_calls(call_id, run_id, stage, provider_name, model, attempt, request_sha, status, error_kind, latency_ms)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9,''), $10)`,
		uuid.NewString(), r.runID, rec.Stage, rec.Provider, rec.Model, rec.Attempt, rec.RequestSHA, rec.Status, rec.ErrorKind, rec.LatencyMS)
	if err != nil {
		return fmt.Errorf("insert generation call: %w", err)
	}
	return nil
}
