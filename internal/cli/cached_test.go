package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkersey/graphmail/internal/store"
)

// seedCache creates a cache database with two messages and one audit
// record, returning its path.
func seedCache(t *testing.T, fingerprint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	received := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.CacheMessages(ctx, []store.CachedMessage{
		{ID: "m1", FolderID: "inbox", Subject: "quarterly invoice", From: "billing@example.com", ReceivedAt: received, Fingerprint: fingerprint},
		{ID: "m2", FolderID: "inbox", Subject: "lunch?", From: "pat@example.com", IsRead: true, ReceivedAt: received.Add(time.Hour), Fingerprint: fingerprint},
	}))
	require.NoError(t, s.RecordBulkAction(ctx, store.BulkAudit{
		Token:       "tok-1",
		Action:      "delete",
		Fingerprint: fingerprint,
		Affected:    2,
		RecordedAt:  received.Add(2 * time.Hour),
	}))
	return path
}

func TestCached_ListsSnapshots(t *testing.T) {
	path := seedCache(t, "fp-1")

	out, err := execute(t, "cached", "--db", path, "--fingerprint", "fp-1")
	require.NoError(t, err)

	assert.Contains(t, out, "quarterly invoice")
	assert.Contains(t, out, "billing@example.com")
	assert.Contains(t, out, "lunch?")
	// Unread marker only on the unread message.
	assert.Contains(t, out, "* 2026-08-20 09:30:00")
}

func TestCached_UnknownFingerprint(t *testing.T) {
	path := seedCache(t, "fp-1")

	out, err := execute(t, "cached", "--db", path, "--fingerprint", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "no cached results")
}

func TestCached_RequiresFingerprint(t *testing.T) {
	_, err := execute(t, "cached", "--db", "x.db")
	require.Error(t, err)
}

func TestCached_NoDatabaseConfigured(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "cached", "--fingerprint", "fp-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no cache database")
}

func TestAudit_ListsRecords(t *testing.T) {
	path := seedCache(t, "fp-1")

	out, err := execute(t, "audit", "--db", path)
	require.NoError(t, err)

	assert.Contains(t, out, "delete")
	assert.Contains(t, out, "affected=2")
	assert.Contains(t, out, "token=tok-1")
}

func TestAudit_EmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err := execute(t, "audit", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no bulk actions recorded")
}
