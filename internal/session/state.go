// ABOUTME: In-memory session state: the ordered conversation list plus the active id
// ABOUTME: Single source of truth for rendering; mutated only through defined operations

package session

import (
	"log/slog"
)

// State holds every conversation plus which one is active. It is a pure
// state container: it performs no I/O and does no locking of its own.
// Callers serialize access (the Controller does).
//
// Invariants, upheld by every operation:
//   - the conversation list is never empty
//   - the active id always resolves to a member of the list
//   - every conversation starts with the assistant greeting
type State struct {
	greeting      string
	conversations []*Conversation
	activeID      string
	version       uint64
	logger        *slog.Logger
}

// Snapshot is an immutable copy of the session state. Every mutation
// bumps Version, so observers can tell stale snapshots apart.
type Snapshot struct {
	Conversations []Conversation
	ActiveID      string
	Version       uint64
}

// NewState creates a fresh session state seeded with a single default
// conversation.
func NewState(greeting string, logger *slog.Logger) *State {
	return Restore(greeting, nil, "", logger)
}

// Restore builds session state from persisted conversations. An empty
// list yields a fresh default conversation; an active id that no longer
// resolves falls back to the first conversation.
func Restore(greeting string, convs []Conversation, activeID string, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	if greeting == "" {
		greeting = DefaultGreeting
	}
	s := &State{
		greeting: greeting,
		logger:   logger.With("component", "session"),
	}
	for i := range convs {
		c := convs[i].Clone()
		s.conversations = append(s.conversations, &c)
	}
	if len(s.conversations) == 0 {
		s.conversations = []*Conversation{s.newConversation()}
	}
	s.activeID = s.conversations[0].ID
	for _, c := range s.conversations {
		if c.ID == activeID {
			s.activeID = activeID
			break
		}
	}
	return s
}

func (s *State) newConversation() *Conversation {
	return &Conversation{
		ID:       NewID(),
		Title:    DefaultTitle,
		Messages: []Message{{Role: RoleModel, Text: s.greeting}},
	}
}

// Create builds a new conversation, inserts it at the front of the list
// and makes it active.
func (s *State) Create() *Conversation {
	c := s.newConversation()
	s.conversations = append([]*Conversation{c}, s.conversations...)
	s.activeID = c.ID
	s.version++
	s.logger.Debug("conversation created", "conversation_id", c.ID)
	return c
}

// Delete removes the named conversation. If it was active, the new
// first conversation becomes active. Deleting the last conversation
// synthesizes a fresh replacement in the same operation, so no empty
// state is ever observable.
func (s *State) Delete(id string) {
	kept := s.conversations[:0]
	removed := false
	for _, c := range s.conversations {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return
	}
	s.conversations = kept
	if len(s.conversations) == 0 {
		s.conversations = []*Conversation{s.newConversation()}
	}
	if s.activeID == id {
		s.activeID = s.conversations[0].ID
	}
	s.version++
	s.logger.Debug("conversation deleted", "conversation_id", id, "active_id", s.activeID)
}

// Get returns the conversation with the given id.
func (s *State) Get(id string) (*Conversation, bool) {
	for _, c := range s.conversations {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Append adds a message to the named conversation.
func (s *State) Append(id string, msg Message) error {
	c, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}
	c.Messages = append(c.Messages, msg)
	s.version++
	return nil
}

// SetTitle sets the conversation title. Call discipline in the
// Controller ensures this happens exactly once, on the first user
// message; the store itself does not enforce that.
func (s *State) SetTitle(id, title string) error {
	c, ok := s.Get(id)
	if !ok {
		return ErrNotFound
	}
	c.Title = title
	s.version++
	return nil
}

// SetActive switches the active conversation.
func (s *State) SetActive(id string) error {
	if _, ok := s.Get(id); !ok {
		return ErrNotFound
	}
	s.activeID = id
	s.version++
	return nil
}

// Active returns the active conversation. A dangling active id should
// be unreachable; if it happens anyway the state self-heals by
// selecting the first conversation rather than failing.
func (s *State) Active() *Conversation {
	if c, ok := s.Get(s.activeID); ok {
		return c
	}
	s.logger.Error("active id does not resolve, self-healing", "active_id", s.activeID)
	s.activeID = s.conversations[0].ID
	s.version++
	return s.conversations[0]
}

// ActiveID returns the id of the active conversation.
func (s *State) ActiveID() string {
	return s.activeID
}

// Len returns the number of conversations.
func (s *State) Len() int {
	return len(s.conversations)
}

// Version returns the current mutation counter.
func (s *State) Version() uint64 {
	return s.version
}

// Snapshot returns an immutable copy of the full state for observers
// and for persistence.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Conversations: make([]Conversation, 0, len(s.conversations)),
		ActiveID:      s.activeID,
		Version:       s.version,
	}
	for _, c := range s.conversations {
		snap.Conversations = append(snap.Conversations, c.Clone())
	}
	return snap
}
