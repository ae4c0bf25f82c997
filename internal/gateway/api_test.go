// ABOUTME: Tests for the gateway HTTP API
// ABOUTME: Verifies 429/500 classification, priming and the history bound

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitechat/sitechat/internal/model"
	"github.com/sitechat/sitechat/internal/session"
)

// stubProvider implements model.Provider for testing
type stubProvider struct {
	reply       string
	err         error
	lastHistory []session.Message
	lastMessage string
}

func (p *stubProvider) Generate(ctx context.Context, history []session.Message, message string) (string, error) {
	p.lastHistory = history
	p.lastMessage = message
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Models() []string {
	return []string{"stub-model"}
}

func postChat(t *testing.T, handler http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChat_Success(t *testing.T) {
	p := &stubProvider{reply: "Hello back!"}
	g := New(p, nil)

	w := postChat(t, g.Handler(), ChatRequest{Message: "Hello"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Hello back!", resp.Reply)
	assert.Equal(t, "Hello", p.lastMessage)
	assert.Empty(t, p.lastHistory)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	p := &stubProvider{reply: "never"}
	g := New(p, nil)

	for _, message := range []string{"", "   ", "\n\t"} {
		w := postChat(t, g.Handler(), ChatRequest{Message: message})

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, msgMessageRequired, resp.Error)
	}
	assert.Empty(t, p.lastMessage, "provider never called for empty messages")
}

func TestChat_MalformedBodyRejected(t *testing.T) {
	g := New(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{oops")))
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_QuotaExhaustionIs429(t *testing.T) {
	p := &stubProvider{err: fmt.Errorf("%w: rpd limit hit", model.ErrQuotaExceeded)}
	g := New(p, nil)

	w := postChat(t, g.Handler(), ChatRequest{Message: "Hello"})

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, msgQuotaExceeded, resp.Error)
}

func TestChat_OtherProviderFailureIs500(t *testing.T) {
	p := &stubProvider{err: errors.New("upstream exploded")}
	g := New(p, nil)

	w := postChat(t, g.Handler(), ChatRequest{Message: "Hello"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, msgModelFailed, resp.Error)
	assert.NotContains(t, resp.Error, "exploded", "internal detail stays out of responses")
}

func TestChat_PrimingPairPrependedOnce(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	g := New(p, nil, WithSiteContext("About this site.", "Understood."))

	history := []session.Message{
		{Role: session.RoleUser, Text: "q1"},
		{Role: session.RoleModel, Text: "a1"},
	}
	w := postChat(t, g.Handler(), ChatRequest{Message: "q2", History: history})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, p.lastHistory, 4)
	assert.Equal(t, session.Message{Role: session.RoleUser, Text: "About this site."}, p.lastHistory[0])
	assert.Equal(t, session.Message{Role: session.RoleModel, Text: "Understood."}, p.lastHistory[1])
	assert.Equal(t, history, p.lastHistory[2:])
}

func TestChat_HistoryLimitKeepsTailAfterPriming(t *testing.T) {
	p := &stubProvider{reply: "ok"}
	g := New(p, nil, WithSiteContext("ctx", "ack"), WithHistoryLimit(2))

	history := []session.Message{
		{Role: session.RoleUser, Text: "q1"},
		{Role: session.RoleModel, Text: "a1"},
		{Role: session.RoleUser, Text: "q2"},
		{Role: session.RoleModel, Text: "a2"},
	}
	w := postChat(t, g.Handler(), ChatRequest{Message: "q3", History: history})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, p.lastHistory, 4, "priming pair plus the trailing 2")
	assert.Equal(t, "ctx", p.lastHistory[0].Text)
	assert.Equal(t, "q2", p.lastHistory[2].Text)
	assert.Equal(t, "a2", p.lastHistory[3].Text)
}

func TestChat_MethodNotAllowed(t *testing.T) {
	g := New(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestModels_ListsProviderModels(t *testing.T) {
	g := New(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ModelsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"stub-model"}, resp.Models)
}

func TestHealthz(t *testing.T) {
	g := New(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
