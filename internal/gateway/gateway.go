// ABOUTME: Gateway wiring the HTTP surface to a model provider
// ABOUTME: Owns the site-context priming and the history bound applied per request

package gateway

import (
	"log/slog"
	"net/http"

	"github.com/sitechat/sitechat/internal/model"
	"github.com/sitechat/sitechat/internal/session"
)

// Gateway serves the chat HTTP API backed by a model provider.
type Gateway struct {
	provider model.Provider
	logger   *slog.Logger

	// siteContext and acknowledgement form the priming pair prepended
	// to every outbound history. Empty siteContext disables priming.
	siteContext     string
	acknowledgement string

	// historyLimit caps the trailing client-supplied history, 0 = unbounded.
	historyLimit int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSiteContext sets the priming pair: the site context as a user
// message and its canned model acknowledgement.
func WithSiteContext(siteContext, acknowledgement string) Option {
	return func(g *Gateway) {
		g.siteContext = siteContext
		g.acknowledgement = acknowledgement
	}
}

// WithHistoryLimit bounds the client-supplied history to its trailing n
// messages.
func WithHistoryLimit(n int) Option {
	return func(g *Gateway) { g.historyLimit = n }
}

// New creates a Gateway around a model provider.
func New(provider model.Provider, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		provider: provider,
		logger:   logger.With("component", "gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handler returns the HTTP handler for the gateway API.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", g.handleChat)
	mux.HandleFunc("/api/models", g.handleModels)
	mux.HandleFunc("/healthz", g.handleHealth)
	return mux
}

// outboundHistory assembles the history passed to the provider: the
// priming pair first, then the client history bounded to its tail.
func (g *Gateway) outboundHistory(history []session.Message) []session.Message {
	if g.historyLimit > 0 && len(history) > g.historyLimit {
		history = history[len(history)-g.historyLimit:]
	}
	if g.siteContext == "" {
		return history
	}
	out := make([]session.Message, 0, len(history)+2)
	out = append(out,
		session.Message{Role: session.RoleUser, Text: g.siteContext},
		session.Message{Role: session.RoleModel, Text: g.acknowledgement},
	)
	return append(out, history...)
}
