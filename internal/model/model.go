// ABOUTME: Model provider interface and shared error taxonomy
// ABOUTME: Quota exhaustion is a distinct failure so the gateway can answer 429

package model

import (
	"context"
	"errors"

	"github.com/sitechat/sitechat/internal/session"
)

// ErrQuotaExceeded marks a provider failure caused by rate limiting or
// quota exhaustion. The gateway maps it to HTTP 429; everything else
// maps to 500.
var ErrQuotaExceeded = errors.New("model quota exceeded")

// Provider generates an assistant reply for a message given its
// conversation history.
type Provider interface {
	// Generate returns the reply text for message, with history as
	// conversational memory. History roles are "user" and "model".
	Generate(ctx context.Context, history []session.Message, message string) (string, error)

	// Models lists the model identifiers this provider serves.
	Models() []string
}
