// ABOUTME: Echo model provider for development and tests
// ABOUTME: Replies deterministically without touching any remote API

package model

import (
	"context"
	"fmt"

	"github.com/sitechat/sitechat/internal/session"
)

// EchoProvider is a stand-in model for development: it echoes the
// message back with the history length, so context plumbing is visible
// end to end without an API key.
type EchoProvider struct{}

// NewEchoProvider creates an echo provider.
func NewEchoProvider() *EchoProvider {
	return &EchoProvider{}
}

// Generate returns a canned reply describing what was received.
func (p *EchoProvider) Generate(ctx context.Context, history []session.Message, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("echo (%d prior messages): %s", len(history), message), nil
}

// Models lists the echo pseudo-model.
func (p *EchoProvider) Models() []string {
	return []string{"echo"}
}

var _ Provider = (*EchoProvider)(nil)
