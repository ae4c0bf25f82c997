// ABOUTME: In-memory implementation of the Store interface for tests and ephemeral use
// ABOUTME: Mirrors the real adapter by storing raw encoded bytes, with failure injection knobs

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sitechat/sitechat/internal/session"
)

// MemoryStore implements the Store interface in memory. It stores the
// same raw bytes a durable adapter would, so corrupt-data handling is
// exercised the same way: set Raw to garbage and loads fail soft.
type MemoryStore struct {
	mu  sync.Mutex
	Raw map[string][]byte

	// SaveErr, when set, is returned from both save operations.
	SaveErr error
	// SaveCalls counts save operations, for asserting flush discipline.
	SaveCalls int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Raw: make(map[string][]byte)}
}

// LoadConversations decodes the stored conversation list. Absent or
// corrupt data reads as ErrNotFound.
func (m *MemoryStore) LoadConversations(ctx context.Context) ([]session.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.Raw[keyConversations]
	if !ok {
		return nil, ErrNotFound
	}
	var convs []session.Conversation
	if err := json.Unmarshal(raw, &convs); err != nil {
		return nil, ErrNotFound
	}
	return convs, nil
}

// SaveConversations overwrites the stored conversation list.
func (m *MemoryStore) SaveConversations(ctx context.Context, convs []session.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(convs)
	if err != nil {
		return fmt.Errorf("encoding conversations: %w", err)
	}
	m.Raw[keyConversations] = raw
	return nil
}

// LoadActiveID reads the stored active conversation id.
func (m *MemoryStore) LoadActiveID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.Raw[keyActiveID]
	if !ok {
		return "", ErrNotFound
	}
	return string(raw), nil
}

// SaveActiveID overwrites the stored active conversation id.
func (m *MemoryStore) SaveActiveID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Raw[keyActiveID] = []byte(id)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
