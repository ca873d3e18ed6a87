package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	FormatJSON = "json"
	FormatText = "text"
)

// Config is read once at startup. API keys may be empty: a server without a
// key still starts and reports the misconfiguration on each verse request.
type Config struct {
	HTTPAddr          string     `validate:"required"`
	LogLevel          slog.Level `validate:"-"`
	LogFormat         string     `validate:"oneof=json text"`
	LLMProvider       string     `validate:"oneof=gemini openrouter"`
	LLMModel          string
	LLMTimeout        time.Duration `validate:"gt=0"`
	GeminiAPIKey      string
	GeminiBaseURL     string `validate:"required,url"`
	OpenRouterAPIKey  string
	OpenRouterBaseURL string `validate:"required,url"`
	PromptTemplate    string
}

var validate = validator.New()

func Load() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		LogFormat:         strings.ToLower(envOr("LOG_FORMAT", FormatJSON)),
		LLMProvider:       strings.ToLower(envOr("LLM_PROVIDER", ProviderGemini)),
		LLMModel:          os.Getenv("LLM_MODEL"),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:     envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMTimeout:        15 * time.Second,
		PromptTemplate:    os.Getenv("VERSE_PROMPT_TEMPLATE"),
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if err := validate.Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
