package shared_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tripplanner/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "LLM_PROVIDER", "GROQ_API_KEY", "GROQ_MODEL", "LLM_TIMEOUT_SECONDS", "BANNER_IMAGE_PATH"} {
		t.Setenv(k, "")
	}

	c := shared.Load()
	if c.HTTPAddr != ":8080" || c.AppEnv != "prod" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.LLMProvider != "groq" || c.GroqModel != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected provider defaults: %+v", c)
	}
	if c.LLMTimeout != 60*time.Second {
		t.Fatalf("LLMTimeout = %s", c.LLMTimeout)
	}
	if c.BannerPath != "assets/banner.svg" {
		t.Fatalf("BannerPath = %s", c.BannerPath)
	}
	if c.APIKey() != "" {
		t.Fatalf("expected empty key")
	}
}

func TestLoad_DotEnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dotenv := "GROQ_API_KEY=from-dotenv\nGEMINI_API_KEY=gem-dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROQ_API_KEY", "") // empty counts as unset for godotenv
	os.Unsetenv("GROQ_API_KEY")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_RPS", "not-a-number")

	c := shared.Load()
	if c.GroqKey != "from-dotenv" {
		t.Fatalf("GroqKey = %q, want value from .env", c.GroqKey)
	}
	if c.LLMProvider != "gemini" || c.APIKey() != "from-env" {
		t.Fatalf("real env should win over .env: provider=%s key=%s", c.LLMProvider, c.APIKey())
	}
	if c.LLMRPS != 2 {
		t.Fatalf("bad int should fall back to default, got %d", c.LLMRPS)
	}
}

func TestLoad_WarningsWaitForCallerLogger(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "   ")

	var global bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&global)
	t.Cleanup(func() { log.Logger = prev })

	c := shared.Load()
	if global.Len() != 0 {
		t.Fatalf("Load logged before the caller configured logging: %s", global.String())
	}
	if len(c.Warnings) != 1 || !strings.Contains(c.Warnings[0], "API key is empty") {
		t.Fatalf("Warnings = %q", c.Warnings)
	}

	var console bytes.Buffer
	c.LogWarnings(zerolog.New(zerolog.ConsoleWriter{Out: &console, NoColor: true}))
	if out := console.String(); !strings.Contains(out, "WRN") || !strings.Contains(out, "API key is empty") {
		t.Fatalf("warning not written through caller logger: %q", out)
	}
}

func TestLoad_NoWarningsWithKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "k")

	if c := shared.Load(); len(c.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %q", c.Warnings)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
