// ABOUTME: Session controller orchestrating the send pipeline and lifecycle operations
// ABOUTME: Owns the Idle/Sending state machine and reconciles replies and failures into chat

package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ErrEmptyMessage is returned when a submission is empty or whitespace-only.
// No state changes and no network call is made.
var ErrEmptyMessage = errors.New("message is empty")

// ErrSendInFlight is returned when the target conversation already has an
// outstanding send. The submission is a no-op.
var ErrSendInFlight = errors.New("send already in flight")

// unavailableText is shown in place of a reply when the remote call
// fails without a user-facing message of its own.
const unavailableText = "Sorry, something went wrong. Please try again."

// RemoteClient sends a user message plus context to the remote
// assistant and returns the reply text or a classified error.
type RemoteClient interface {
	Send(ctx context.Context, message string, history []Message) (string, error)
}

// Persistence is what the controller needs from storage: best-effort
// writes after every mutation. Loading happens once at startup, outside
// the controller.
type Persistence interface {
	SaveConversations(ctx context.Context, convs []Conversation) error
	SaveActiveID(ctx context.Context, id string) error
}

// UserFacing is implemented by errors that carry text safe to surface
// verbatim in the chat transcript.
type UserFacing interface {
	UserMessage() string
}

// Controller drives the session state: it creates, selects and deletes
// conversations, runs the send pipeline, and flushes persistence after
// every mutation. No error from the remote client or the storage layer
// escapes it; every failure path ends in a recovered state or a visible
// chat message.
type Controller struct {
	mu      sync.Mutex
	state   *State
	persist Persistence
	client  RemoteClient
	logger  *slog.Logger

	// windowLimit bounds the trailing context window, 0 = unbounded.
	windowLimit int

	// sending tracks conversations with an outstanding send. At most
	// one send per conversation; sends to different conversations may
	// overlap.
	sending map[string]bool

	onUpdate func(Snapshot)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithWindowLimit bounds the context window to the trailing n messages.
func WithWindowLimit(n int) ControllerOption {
	return func(c *Controller) { c.windowLimit = n }
}

// WithOnUpdate registers an observer called with a fresh snapshot after
// every state mutation. The presentation layer renders from snapshots
// rather than reaching into shared state.
func WithOnUpdate(fn func(Snapshot)) ControllerOption {
	return func(c *Controller) { c.onUpdate = fn }
}

// NewController creates a controller around existing session state.
func NewController(state *State, persist Persistence, client RemoteClient, logger *slog.Logger, opts ...ControllerOption) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		state:   state,
		persist: persist,
		client:  client,
		logger:  logger.With("component", "controller"),
		sending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send submits a user message to the active conversation and blocks
// until the reply (or a classified failure) has been reconciled into
// the transcript. The returned error is only ever a validation
// sentinel; remote failures surface as chat messages, not errors.
func (c *Controller) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	conv := c.state.Active()
	if c.sending[conv.ID] {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.sending[conv.ID] = true
	convID := conv.ID

	// Optimistic append: the user message lands before the remote call,
	// so it is recorded even if the call fails.
	first := !conv.HasUserMessage()
	if err := c.state.Append(convID, Message{Role: RoleUser, Text: trimmed}); err != nil {
		delete(c.sending, convID)
		c.mu.Unlock()
		return err
	}
	if first {
		_ = c.state.SetTitle(convID, TitleFor(trimmed))
	}

	// The window is built after the optimistic append, so it excludes
	// both the greeting and the outgoing message by construction.
	window := ContextWindow(conv, c.windowLimit)
	snap := c.flushLocked(ctx)
	c.mu.Unlock()
	c.notify(snap)

	reply, err := c.client.Send(ctx, trimmed, window)

	c.mu.Lock()
	delete(c.sending, convID)
	if err != nil {
		reply = c.errorText(err)
		c.logger.Warn("remote send failed", "conversation_id", convID, "error", err)
	}
	// The result applies to the conversation that initiated the send,
	// even if it is no longer active or was deleted meanwhile.
	if appendErr := c.state.Append(convID, Message{Role: RoleModel, Text: reply}); appendErr != nil {
		c.logger.Warn("conversation gone before reply arrived", "conversation_id", convID)
	}
	snap = c.flushLocked(ctx)
	c.mu.Unlock()
	c.notify(snap)
	return nil
}

// errorText maps a classified remote failure to the assistant-role text
// shown in place of a reply.
func (c *Controller) errorText(err error) string {
	var uf UserFacing
	if errors.As(err, &uf) && uf.UserMessage() != "" {
		return uf.UserMessage()
	}
	return unavailableText
}

// NewConversation creates a conversation, makes it active, and flushes.
func (c *Controller) NewConversation(ctx context.Context) Conversation {
	c.mu.Lock()
	conv := c.state.Create().Clone()
	snap := c.flushLocked(ctx)
	c.mu.Unlock()
	c.notify(snap)
	return conv
}

// SwitchTo makes the named conversation active.
func (c *Controller) SwitchTo(ctx context.Context, id string) error {
	c.mu.Lock()
	if err := c.state.SetActive(id); err != nil {
		c.mu.Unlock()
		return err
	}
	snap := c.flushLocked(ctx)
	c.mu.Unlock()
	c.notify(snap)
	return nil
}

// DeleteConversation removes the named conversation, letting the state
// re-point the active id or synthesize a replacement as needed.
func (c *Controller) DeleteConversation(ctx context.Context, id string) {
	c.mu.Lock()
	c.state.Delete(id)
	snap := c.flushLocked(ctx)
	c.mu.Unlock()
	c.notify(snap)
}

// Sending reports whether the named conversation has a send in flight.
func (c *Controller) Sending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending[id]
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// flushLocked persists the full state. Writes are best-effort: a
// storage failure is logged, never propagated. Callers hold the lock.
func (c *Controller) flushLocked(ctx context.Context) Snapshot {
	snap := c.state.Snapshot()
	if err := c.persist.SaveConversations(ctx, snap.Conversations); err != nil {
		c.logger.Warn("failed to persist conversations", "error", err)
	}
	if err := c.persist.SaveActiveID(ctx, snap.ActiveID); err != nil {
		c.logger.Warn("failed to persist active id", "error", err)
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	if c.onUpdate != nil {
		c.onUpdate(snap)
	}
}
