// ABOUTME: Store interface and state bootstrap for sitechat persistence
// ABOUTME: Two logical keys: the conversation list and the active conversation id

package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sitechat/sitechat/internal/session"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// Store is the persistence adapter for session state. Implementations
// fail soft on load: corrupt or absent data reads as ErrNotFound, never
// as a decode error, so callers can always fall back to a fresh default
// state.
type Store interface {
	LoadConversations(ctx context.Context) ([]session.Conversation, error)
	SaveConversations(ctx context.Context, convs []session.Conversation) error
	LoadActiveID(ctx context.Context) (string, error)
	SaveActiveID(ctx context.Context, id string) error
	Close() error
}

// Bootstrap loads persisted session state, falling back to a fresh
// default state when nothing (or nothing readable) is stored. The two
// keys carry no transactional guarantee; a stored active id that does
// not match any loaded conversation is resolved by the existence check
// in session.Restore.
func Bootstrap(ctx context.Context, s Store, greeting string, logger *slog.Logger) *session.State {
	if logger == nil {
		logger = slog.Default()
	}
	convs, err := s.LoadConversations(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("loading conversations failed, starting fresh", "error", err)
		}
		convs = nil
	}
	activeID, err := s.LoadActiveID(ctx)
	if err != nil {
		activeID = ""
	}
	return session.Restore(greeting, convs, activeID, logger)
}
