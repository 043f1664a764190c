// Package store provides SQLite-backed local storage for query
// results and bulk-action audit records.
//
// Two tables:
//   - cached_messages: message snapshots keyed by the fingerprint of
//     the query that fetched them, so a CLI invocation can inspect
//     the last result set offline
//   - bulk_audit: one row per executed bulk action, keyed by the
//     action's token
//
// Fingerprints are content-addressed: SHA-256 with domain separation
// over the canonical serialization of the compiled query parameters.
// The same query always maps to the same cache rows.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
