// ABOUTME: Context window derivation for outbound requests
// ABOUTME: Strips the greeting and the outgoing message, optionally bounds the tail

package session

// ContextWindow returns the message history to send with an outbound
// request: everything strictly between the seed greeting and the last
// message. The greeting is local UI chrome, and the last message is the
// just-appended outgoing one, transmitted separately as the primary
// payload.
//
// A limit > 0 keeps only the trailing limit messages, bounding request
// cost for long-running conversations. Zero means unbounded.
func ContextWindow(c *Conversation, limit int) []Message {
	if len(c.Messages) <= 2 {
		return nil
	}
	window := c.Messages[1 : len(c.Messages)-1]
	if limit > 0 && len(window) > limit {
		window = window[len(window)-limit:]
	}
	out := make([]Message, len(window))
	copy(out, window)
	return out
}
