// Package groq talks to an OpenAI-compatible chat-completions endpoint (Groq by default).
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tripplanner/internal/adapters/observability"
	"tripplanner/internal/domain"
)

const provider = "groq"

var (
	ErrMissingKey    = errors.New("groq: API key is not configured")
	ErrUnauthorized  = errors.New("groq: unauthorized")
	ErrEmptyResponse = errors.New("groq: response has no message content")
)

type Client struct {
	base  string
	hc    *http.Client
	key   string
	model string
	rl    *rate.Limiter
}

// New builds a client. An empty key is accepted; Generate then fails with an
// auth failure instead of the process refusing to start.
func New(base, key, model string, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 2
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: timeout},
		key:   key,
		model: model,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Name() string { return provider }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion. There are no retries: a failed call
// fails the current action.
func (c *Client) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	if strings.TrimSpace(c.key) == "" {
		return "", domain.NewGenerationError(domain.FailureAuth, provider, ErrMissingKey)
	}
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider, err)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
	})
	if err != nil {
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tripplanner/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(provider, 0, time.Since(start))
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(provider, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return "", domain.NewGenerationError(domain.FailureAuth, provider,
			fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode))

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", domain.NewGenerationError(domain.FailureUnavailable, provider,
			fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.NewGenerationError(domain.FailureMalformed, provider, fmt.Errorf("decode response: %w", err))
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", domain.NewGenerationError(domain.FailureMalformed, provider, ErrEmptyResponse)
	}
	return out.Choices[0].Message.Content, nil
}
