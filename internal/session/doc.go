// ABOUTME: Package documentation for the session core
// ABOUTME: Explains state, controller, context window and their invariants

// Package session implements the conversation session manager: the
// in-memory conversation store, the controller that drives the send
// pipeline, and the context-window derivation for outbound requests.
//
// # State
//
// State holds the ordered conversation list plus the active id. It is a
// pure container with three invariants that hold after every operation:
// the list is never empty, the active id always resolves, and every
// conversation starts with the assistant greeting.
//
// # Controller
//
// The Controller serializes all mutations and runs the per-conversation
// send state machine (Idle -> Sending -> Idle):
//
//	ctrl := session.NewController(state, store, client, logger)
//	err := ctrl.Send(ctx, "Hello")
//
// A send appends the user message optimistically, sets the title on the
// first user message, builds the context window, calls the remote
// client, and reconciles the reply or the classified failure back into
// the transcript. Persistence is flushed after every mutation.
//
// # Context window
//
// ContextWindow returns everything strictly between the seed greeting
// and the just-appended outgoing message. An optional limit bounds the
// trailing window for long conversations.
package session
