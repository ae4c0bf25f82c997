// ABOUTME: HTTP API handlers for the chat gateway
// ABOUTME: POST /api/chat, GET /api/models and a liveness endpoint

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sitechat/sitechat/internal/model"
	"github.com/sitechat/sitechat/internal/session"
)

// ChatRequest is the JSON request body for POST /api/chat.
type ChatRequest struct {
	Message string            `json:"message"`
	History []session.Message `json:"history"`
}

// ChatResponse is the JSON success body for POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the JSON failure body for any endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ModelsResponse is the JSON body for GET /api/models.
type ModelsResponse struct {
	Models []string `json:"models"`
}

// User-facing error texts returned by the chat endpoint.
const (
	msgMessageRequired = "Message is required"
	msgQuotaExceeded   = "API quota exceeded. Please try again later or update the API key."
	msgModelFailed     = "Failed to get response from AI"
)

// handleChat handles POST /api/chat: it forwards the message with its
// primed history to the model and returns the reply, classifying
// provider failures as 429 (quota) or 500 (everything else).
func (g *Gateway) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMessageRequired})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMessageRequired})
		return
	}

	g.logger.Debug("processing chat request", "history_len", len(req.History))

	reply, err := g.provider.Generate(r.Context(), g.outboundHistory(req.History), req.Message)
	if err != nil {
		if errors.Is(err, model.ErrQuotaExceeded) {
			g.logger.Warn("model quota exceeded", "error", err)
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: msgQuotaExceeded})
			return
		}
		g.logger.Error("model request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgModelFailed})
		return
	}

	g.logger.Debug("reply generated", "reply_len", len(reply))
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// handleModels handles GET /api/models.
func (g *Gateway) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: g.provider.Models()})
}

// handleHealth handles GET /healthz.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
