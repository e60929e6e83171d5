// Package gemini generates itineraries with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"tripplanner/internal/adapters/observability"
	"tripplanner/internal/domain"
)

const provider = "gemini"

var (
	ErrMissingKey    = errors.New("gemini: API key is not configured")
	ErrEmptyResponse = errors.New("gemini: response has no text parts")
)

type Client struct {
	key     string
	model   string
	timeout time.Duration
}

func New(key, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{key: key, model: model, timeout: timeout}
}

func (c *Client) Name() string { return provider }

// Generate opens a client per call; the service keeps no connection state between actions.
func (c *Client) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	if strings.TrimSpace(c.key) == "" {
		return "", domain.NewGenerationError(domain.FailureAuth, provider, ErrMissingKey)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.key))
	if err != nil {
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider, fmt.Errorf("create client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		observability.ObserveExternal(provider, statusOf(err), time.Since(start))
		return "", domain.NewGenerationError(Classify(err), provider, fmt.Errorf("generate content: %w", err))
	}
	observability.ObserveExternal(provider, http.StatusOK, time.Since(start))

	text := joinText(resp)
	if text == "" {
		return "", domain.NewGenerationError(domain.FailureMalformed, provider, ErrEmptyResponse)
	}
	return text, nil
}

func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	return strings.Join(parts, "\n")
}

func statusOf(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// Classify maps a Gemini SDK error to a failure kind. The SDK surfaces REST
// and gRPC errors differently, so the message is checked as well as the code.
func Classify(err error) domain.FailureKind {
	switch statusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.FailureAuth
	}
	low := strings.ToLower(err.Error())
	if strings.Contains(low, "api key not valid") || strings.Contains(low, "permissiondenied") ||
		strings.Contains(low, "permission_denied") || strings.Contains(low, "unauthenticated") {
		return domain.FailureAuth
	}
	return domain.FailureUnavailable
}
