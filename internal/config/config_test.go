package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/vaas-go/internal/config"
)

var configEnv = []string{
	"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT",
	"GEMINI_API_KEY", "GEMINI_BASE_URL", "OPENROUTER_API_KEY", "OPENROUTER_BASE_URL",
	"VERSE_PROMPT_TEMPLATE",
}

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, config.FormatJSON, cfg.LogFormat)
	assert.Equal(t, config.ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Empty(t, cfg.GeminiAPIKey, "missing key must not fail startup")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LLM_PROVIDER", "openrouter")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("OPENROUTER_API_KEY", "  or-key ")
	t.Setenv("VERSE_PROMPT_TEMPLATE", "{{.Feeling}}")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, config.FormatText, cfg.LogFormat)
	assert.Equal(t, config.ProviderOpenRouter, cfg.LLMProvider)
	assert.Equal(t, 3*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "or-key", cfg.OpenRouterAPIKey)
	assert.Equal(t, "{{.Feeling}}", cfg.PromptTemplate)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timeout", "LLM_TIMEOUT", "soon"},
		{"zero timeout", "LLM_TIMEOUT", "0s"},
		{"negative timeout", "LLM_TIMEOUT", "-1s"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"unknown provider", "LLM_PROVIDER", "oracle"},
		{"bad base url", "GEMINI_BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a set variable, even an empty one.
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	t.Setenv("LLM_MODEL", "from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-file\nLLM_MODEL=from-file\n"), 0o600))

	require.NoError(t, config.LoadDotEnv(path, filepath.Join(dir, "missing.env")))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "from-env", cfg.LLMModel, "existing variables win over the file")
}

func TestLoadDotEnv_UnreadableFile(t *testing.T) {
	dir := t.TempDir()

	// A directory exists but cannot be parsed as a .env file.
	err := config.LoadDotEnv(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}
