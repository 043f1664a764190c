package store

import (
	"context"
	"fmt"
	"time"
)

// BulkAudit is one executed bulk action.
type BulkAudit struct {
	Token       string    `json:"token"`
	Action      string    `json:"action"`
	Fingerprint string    `json:"query_fingerprint"`
	Affected    int       `json:"affected"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// RecordBulkAction inserts an audit record. The token is the bulk
// context's unique token; re-recording the same token is silently
// ignored for idempotency.
func (s *Store) RecordBulkAction(ctx context.Context, rec BulkAudit) error {
	recorded := rec.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bulk_audit
		(token, action, query_fingerprint, affected, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		rec.Token,
		rec.Action,
		rec.Fingerprint,
		rec.Affected,
		recorded.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record bulk action: %w", err)
	}
	return nil
}

// BulkActions returns all audit records, oldest first with token as
// tiebreaker for stable output.
func (s *Store) BulkActions(ctx context.Context) ([]BulkAudit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, action, query_fingerprint, affected, recorded_at
		FROM bulk_audit
		ORDER BY recorded_at ASC, token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read bulk audit: %w", err)
	}
	defer rows.Close()

	var recs []BulkAudit
	for rows.Next() {
		var rec BulkAudit
		var recorded string
		if err := rows.Scan(&rec.Token, &rec.Action, &rec.Fingerprint, &rec.Affected, &recorded); err != nil {
			return nil, fmt.Errorf("read bulk audit: scan: %w", err)
		}
		if rec.RecordedAt, err = time.Parse(time.RFC3339, recorded); err != nil {
			return nil, fmt.Errorf("read bulk audit: recorded_at: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bulk audit: %w", err)
	}
	return recs, nil
}
