package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	RequestTimeout time.Duration
	BannerPath     string

	LLMProvider string
	LLMTimeout  time.Duration
	LLMRPS      int

	GroqKey   string
	GroqBase  string
	GroqModel string

	GeminiKey   string
	GeminiModel string

	// Warnings are collected while loading and logged by the caller once its
	// logger is configured.
	Warnings []string
}

// Load reads the process environment after merging a .env file from the
// working directory, if there is one. Real env vars win over .env entries.
// Load does not log; see Config.Warnings.
func Load() Config {
	var warnings []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, fmt.Sprintf(".env present but unreadable: %v", err))
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 90)) * time.Second,
		BannerPath:     env("BANNER_IMAGE_PATH", "assets/banner.svg"),
		LLMProvider:    strings.ToLower(env("LLM_PROVIDER", "groq")),
		LLMTimeout:     time.Duration(atoi("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		LLMRPS:         atoi("LLM_RPS", 2),
		GroqKey:        env("GROQ_API_KEY", ""),
		GroqBase:       env("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:      env("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiKey:      env("GEMINI_API_KEY", ""),
		GeminiModel:    env("GEMINI_MODEL", "gemini-2.0-flash"),
	}
	if strings.TrimSpace(c.APIKey()) == "" {
		// not fatal: the itinerary call reports an auth failure when it happens
		warnings = append(warnings, fmt.Sprintf("text-generation API key is empty (provider %s)", c.LLMProvider))
	}
	c.Warnings = warnings
	return c
}

// LogWarnings writes the load warnings to l.
func (c Config) LogWarnings(l zerolog.Logger) {
	for _, w := range c.Warnings {
		l.Warn().Msg(w)
	}
}

// APIKey is the credential of the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiKey
	}
	return c.GroqKey
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
