// ABOUTME: Core data types for the sitechat session manager
// ABOUTME: Defines Message, Conversation and the roles used on the wire

package session

import "errors"

// ErrNotFound is returned when an operation names a conversation that does not exist
var ErrNotFound = errors.New("conversation not found")

// Role identifies the author of a message. The values match the wire
// contract of the chat gateway ("user" and "model").
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// DefaultTitle is the placeholder title of a conversation before its
// first user message.
const DefaultTitle = "New Chat"

// DefaultGreeting seeds every new conversation. The greeting is UI
// chrome: it is displayed but never sent as outbound context.
const DefaultGreeting = "Hi! How can I help you today?"

const (
	titleMaxRunes = 40
	titleEllipsis = "…"
)

// Message is a single chat message. Messages are immutable once
// appended; ordering is insertion order within a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is one independent thread of messages. The first message
// is always the assistant greeting.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// HasUserMessage reports whether the conversation contains at least one
// user message. The title is set exactly once, on the first one.
func (c *Conversation) HasUserMessage() bool {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() Conversation {
	out := Conversation{ID: c.ID, Title: c.Title}
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// TitleFor derives a conversation title from its first user message:
// a 40-rune prefix with an ellipsis appended when truncated.
func TitleFor(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxRunes {
		return text
	}
	return string(runes[:titleMaxRunes]) + titleEllipsis
}
