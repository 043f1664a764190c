package store

import (
	"context"
	"fmt"
	"time"
)

// CachedMessage is one message snapshot in the local cache.
type CachedMessage struct {
	ID             string    `json:"id"`
	FolderID       string    `json:"folder_id"`
	Subject        string    `json:"subject"`
	From           string    `json:"from"`
	IsRead         bool      `json:"is_read"`
	HasAttachments bool      `json:"has_attachments"`
	Importance     string    `json:"importance,omitempty"`
	ReceivedAt     time.Time `json:"received_at,omitzero"`
	Fingerprint    string    `json:"query_fingerprint"`
	CachedAt       time.Time `json:"cached_at"`
}

// CacheMessages upserts message snapshots under the given query
// fingerprint. Re-caching the same message refreshes its row; rows
// from earlier fingerprints are left alone.
func (s *Store) CacheMessages(ctx context.Context, msgs []CachedMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cache messages: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := time.Now().UTC().Format(time.RFC3339)
	for _, m := range msgs {
		var received string
		if !m.ReceivedAt.IsZero() {
			received = m.ReceivedAt.UTC().Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cached_messages
			(id, folder_id, subject, from_address, is_read, has_attachments, importance, received_at, query_fingerprint, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				folder_id = excluded.folder_id,
				subject = excluded.subject,
				from_address = excluded.from_address,
				is_read = excluded.is_read,
				has_attachments = excluded.has_attachments,
				importance = excluded.importance,
				received_at = excluded.received_at,
				query_fingerprint = excluded.query_fingerprint,
				cached_at = excluded.cached_at
		`,
			m.ID,
			m.FolderID,
			m.Subject,
			m.From,
			m.IsRead,
			m.HasAttachments,
			m.Importance,
			received,
			m.Fingerprint,
			now,
		)
		if err != nil {
			return fmt.Errorf("cache messages: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache messages: commit: %w", err)
	}
	return nil
}

// CachedMessages returns the snapshots cached under a fingerprint,
// newest received first with ID as tiebreaker for stable output.
func (s *Store) CachedMessages(ctx context.Context, fingerprint string) ([]CachedMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, folder_id, subject, from_address, is_read, has_attachments, importance, received_at, query_fingerprint, cached_at
		FROM cached_messages
		WHERE query_fingerprint = ?
		ORDER BY received_at DESC, id ASC
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("read cached messages: %w", err)
	}
	defer rows.Close()

	var msgs []CachedMessage
	for rows.Next() {
		var m CachedMessage
		var received, cached string
		if err := rows.Scan(&m.ID, &m.FolderID, &m.Subject, &m.From, &m.IsRead, &m.HasAttachments, &m.Importance, &received, &m.Fingerprint, &cached); err != nil {
			return nil, fmt.Errorf("read cached messages: scan: %w", err)
		}
		if received != "" {
			if m.ReceivedAt, err = time.Parse(time.RFC3339, received); err != nil {
				return nil, fmt.Errorf("read cached messages: received_at: %w", err)
			}
		}
		if m.CachedAt, err = time.Parse(time.RFC3339, cached); err != nil {
			return nil, fmt.Errorf("read cached messages: cached_at: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cached messages: %w", err)
	}
	return msgs, nil
}

// PurgeFingerprint removes all snapshots cached under a fingerprint
// and returns the number of rows deleted.
func (s *Store) PurgeFingerprint(ctx context.Context, fingerprint string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM cached_messages WHERE query_fingerprint = ?
	`, fingerprint)
	if err != nil {
		return 0, fmt.Errorf("purge fingerprint: %w", err)
	}
	return result.RowsAffected()
}
