package groq_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tripplanner/internal/adapters/llm/groq"
	"tripplanner/internal/domain"
)

var prompt = domain.Prompt{System: "You are a futuristic AI travel assistant.", User: "Plan my trip"}

func kindOf(t *testing.T, err error) domain.FailureKind {
	t.Helper()
	var gerr *domain.GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %T (%v)", err, err)
	}
	return gerr.Kind
}

func TestClient_Generate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		var body struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.Model != "llama-3.3-70b-versatile" || body.Temperature != 0 {
			t.Errorf("unexpected model/temperature: %+v", body)
		}
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Content != "Plan my trip" {
			t.Errorf("unexpected messages: %+v", body.Messages)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": "Day 1: launchpad"}}},
		})
	}))
	defer ts.Close()

	cl := groq.New(ts.URL+"/", "test-key", "llama-3.3-70b-versatile", 100, time.Second)
	got, err := cl.Generate(context.Background(), prompt)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "Day 1: launchpad" {
		t.Fatalf("got %q", got)
	}
}

func TestClient_Generate_MissingKeySkipsNetwork(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	for _, key := range []string{"", "   ", "\t\n"} {
		cl := groq.New(ts.URL, key, "m", 100, time.Second)
		_, err := cl.Generate(context.Background(), prompt)
		if kindOf(t, err) != domain.FailureAuth || !errors.Is(err, groq.ErrMissingKey) {
			t.Fatalf("key %q: expected auth failure with ErrMissingKey, got %v", key, err)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("no request expected without a key, got %d", atomic.LoadInt32(&hits))
	}
}

func TestClient_Generate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.FailureKind
	}{
		{"401 is auth", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key"}}`, domain.FailureAuth},
		{"403 is auth", http.StatusForbidden, `{}`, domain.FailureAuth},
		{"500 is unavailable", http.StatusInternalServerError, `oops`, domain.FailureUnavailable},
		{"429 is unavailable", http.StatusTooManyRequests, `slow down`, domain.FailureUnavailable},
		{"garbage body is malformed", http.StatusOK, `not json`, domain.FailureMalformed},
		{"no choices is malformed", http.StatusOK, `{"choices":[]}`, domain.FailureMalformed},
		{"blank content is malformed", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, domain.FailureMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			cl := groq.New(ts.URL, "test-key", "m", 100, time.Second)
			_, err := cl.Generate(context.Background(), prompt)
			if got := kindOf(t, err); got != tt.want {
				t.Fatalf("kind = %s, want %s (%v)", got, tt.want, err)
			}
			if n := atomic.LoadInt32(&hits); n != 1 {
				t.Fatalf("expected exactly one call (no retries), got %d", n)
			}
		})
	}
}

func TestClient_Generate_NetworkErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing listens any more

	cl := groq.New(url, "test-key", "m", 100, time.Second)
	_, err := cl.Generate(context.Background(), prompt)
	if kindOf(t, err) != domain.FailureUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
