// ABOUTME: Package documentation for the persistence adapter
// ABOUTME: Explains the key/value model and the fail-soft load contract

// Package store persists session state across widget restarts.
//
// # Model
//
// State is small and read once per activation, so it lives under two
// fixed logical keys rather than a relational schema:
//
//   - conversations: JSON array of the full conversation list
//   - active_id: the id of the conversation being displayed
//
// There is no transactional guarantee across the two keys. A stored
// active id that no longer matches a stored conversation is resolved by
// the existence check in session.Restore.
//
// # Fail-soft loads
//
// Loads never surface decode errors. Absent or corrupt data reads as
// ErrNotFound, and Bootstrap falls back to a fresh default session
// state with a single greeted conversation. Saves are best-effort and
// called by the controller after every mutation.
//
// # Implementations
//
// SQLiteStore is the durable adapter (modernc.org/sqlite, WAL mode).
// MemoryStore is the in-memory fake used in tests, with failure
// injection for exercising the controller's flush discipline.
package store
