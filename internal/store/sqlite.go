// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Key/value persistence of the conversation list and active id with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/sitechat/sitechat/internal/session"
)

const (
	keyConversations = "conversations"
	keyActiveID      = "active_id"
)

// SQLiteStore implements the Store interface using SQLite. Session
// state is small, so it lives under two fixed keys in a single
// key/value table rather than a relational schema.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path. The
// schema is created if it doesn't exist; parent directories are created
// if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL keeps fire-and-forget writes from stalling reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS widget_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

// LoadConversations reads the persisted conversation list. Absent or
// unreadable data reads as ErrNotFound so the caller falls back to a
// fresh default state; corruption is logged, never propagated.
func (s *SQLiteStore) LoadConversations(ctx context.Context) ([]session.Conversation, error) {
	raw, err := s.get(ctx, keyConversations)
	if err != nil {
		return nil, err
	}
	var convs []session.Conversation
	if err := json.Unmarshal(raw, &convs); err != nil {
		s.logger.Warn("stored conversations are corrupt, discarding", "error", err)
		return nil, ErrNotFound
	}
	return convs, nil
}

// SaveConversations overwrites the persisted conversation list.
func (s *SQLiteStore) SaveConversations(ctx context.Context, convs []session.Conversation) error {
	raw, err := json.Marshal(convs)
	if err != nil {
		return fmt.Errorf("encoding conversations: %w", err)
	}
	return s.put(ctx, keyConversations, raw)
}

// LoadActiveID reads the persisted active conversation id.
func (s *SQLiteStore) LoadActiveID(ctx context.Context) (string, error) {
	raw, err := s.get(ctx, keyActiveID)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SaveActiveID overwrites the persisted active conversation id.
func (s *SQLiteStore) SaveActiveID(ctx context.Context, id string) error {
	return s.put(ctx, keyActiveID, []byte(id))
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM widget_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO widget_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
