// ABOUTME: HTTP client for the remote chat endpoint with classified failures
// ABOUTME: Maps 429 to RateLimited and everything else to Unavailable, never retries

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sitechat/sitechat/internal/session"
)

// Kind classifies a remote failure.
type Kind string

const (
	// KindRateLimited means the remote collaborator signaled quota
	// exhaustion (HTTP 429).
	KindRateLimited Kind = "rate_limited"
	// KindUnavailable covers every other failure: network errors,
	// 5xx responses, malformed bodies.
	KindUnavailable Kind = "unavailable"
)

// Fallback texts shown when the server provides no error message of its
// own. The rate-limit text mirrors what the gateway sends on 429.
const (
	rateLimitedText = "API quota exceeded. Please try again later."
	unavailableText = "Sorry, something went wrong. Please try again."
)

// RequestError is a classified remote failure. Message is safe to show
// verbatim in the chat transcript.
type RequestError struct {
	Kind    Kind
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("chat request failed (%s): %s", e.Kind, e.Message)
}

// UserMessage returns the user-facing text for this failure.
func (e *RequestError) UserMessage() string {
	return e.Message
}

// chatRequest is the JSON body sent to POST /api/chat.
type chatRequest struct {
	Message string            `json:"message"`
	History []session.Message `json:"history"`
}

// chatResponse is the JSON success body from POST /api/chat.
type chatResponse struct {
	Reply string `json:"reply"`
}

// errorResponse is the JSON failure body from POST /api/chat.
type errorResponse struct {
	Error string `json:"error"`
}

// ChatClient talks to the chat gateway. It performs exactly one request
// per send; retry policy belongs to the caller (here: none, failures
// surface as chat messages).
type ChatClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a ChatClient.
type Option func(*ChatClient)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ChatClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *ChatClient) { c.httpClient.Timeout = d }
}

// New creates a ChatClient for the gateway at baseURL.
func New(baseURL string, logger *slog.Logger, opts ...Option) *ChatClient {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ChatClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger.With("component", "client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the message plus its context window to the gateway and
// returns the reply text. Failures come back as a *RequestError.
func (c *ChatClient) Send(ctx context.Context, message string, history []session.Message) (string, error) {
	if history == nil {
		history = []session.Message{}
	}
	body, err := json.Marshal(chatRequest{Message: message, History: history})
	if err != nil {
		return "", &RequestError{Kind: KindUnavailable, Message: unavailableText}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Kind: KindUnavailable, Message: unavailableText}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("chat request failed", "error", err)
		return "", &RequestError{Kind: KindUnavailable, Message: unavailableText}
	}
	defer resp.Body.Close()

	// Cap reads; replies are text, not uploads
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &RequestError{Kind: KindUnavailable, Message: unavailableText}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var out chatResponse
		if err := json.Unmarshal(raw, &out); err != nil || out.Reply == "" {
			c.logger.Warn("malformed chat response", "status", resp.StatusCode)
			return "", &RequestError{Kind: KindUnavailable, Message: unavailableText}
		}
		return out.Reply, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &RequestError{Kind: KindRateLimited, Message: serverError(raw, rateLimitedText)}

	default:
		c.logger.Warn("chat request rejected", "status", resp.StatusCode)
		return "", &RequestError{Kind: KindUnavailable, Message: serverError(raw, unavailableText)}
	}
}

// serverError extracts the server-provided error text, falling back to
// the given default when the body has none.
func serverError(raw []byte, fallback string) string {
	var out errorResponse
	if err := json.Unmarshal(raw, &out); err == nil && out.Error != "" {
		return out.Error
	}
	return fallback
}

var (
	_ session.RemoteClient = (*ChatClient)(nil)
	_ session.UserFacing   = (*RequestError)(nil)
)
