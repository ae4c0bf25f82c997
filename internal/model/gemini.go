// ABOUTME: Gemini-backed model provider using the native Google AI SDK
// ABOUTME: Maps session history to genai contents and classifies quota errors

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/sitechat/sitechat/internal/session"
)

const geminiDefaultTimeout = 60 * time.Second

// geminiGenerator is the slice of the genai models client the provider
// needs, kept narrow so tests can stub it.
type geminiGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider implements Provider against the Google AI API.
type GeminiProvider struct {
	generator geminiGenerator
	model     string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGeminiProvider creates a provider for the named model.
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}
	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	logger.Debug("gemini provider ready", "model", model, "timeout", timeout)
	return &GeminiProvider{
		generator: client.Models,
		model:     model,
		timeout:   timeout,
		logger:    logger.With("component", "gemini"),
	}, nil
}

// Generate sends the message with its history and returns the visible
// reply text.
func (p *GeminiProvider) Generate(ctx context.Context, history []session.Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  string(geminiRole(m.Role)),
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.generator.GenerateContent(callCtx, p.model, contents, nil)
	if err != nil {
		return "", p.classify(err)
	}

	reply := visibleText(resp)
	if reply == "" {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return reply, nil
}

// Models lists the configured model.
func (p *GeminiProvider) Models() []string {
	return []string{p.model}
}

// classify wraps quota errors in ErrQuotaExceeded so the gateway can
// distinguish them from everything else.
func (p *GeminiProvider) classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
		return fmt.Errorf("gemini request failed (%d): %s", apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}

func geminiRole(r session.Role) genai.Role {
	if r == session.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// visibleText joins the non-thought text parts of the first candidate.
func visibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

var _ Provider = (*GeminiProvider)(nil)
