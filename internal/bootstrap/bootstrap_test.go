package bootstrap_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/vaas-go/internal/bootstrap"
	"github.com/randomtoy/vaas-go/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGemini answers generateContent with the given model text.
func fakeGemini(t *testing.T, text string, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL, key string) config.Config {
	return config.Config{
		LLMProvider:   config.ProviderGemini,
		LLMModel:      "test-model",
		LLMTimeout:    time.Second,
		GeminiAPIKey:  key,
		GeminiBaseURL: baseURL,
	}
}

func TestNewServer_RoundTrip(t *testing.T) {
	var calls int
	upstream := fakeGemini(t, `{"text":"The LORD is my shepherd.","reference":"Psalm 23:1"}`, &calls)

	e, err := bootstrap.NewServer(testConfig(upstream.URL, "test-key"), upstream.Client(), quietLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/verse?feeling=lost", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"The LORD is my shepherd.","reference":"Psalm 23:1"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, 1, calls)
}

func TestNewServer_MissingKeyStillServes(t *testing.T) {
	var calls int
	upstream := fakeGemini(t, "unused", &calls)

	e, err := bootstrap.NewServer(testConfig(upstream.URL, ""), upstream.Client(), quietLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/verse?feeling=lost", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server missing GEMINI_API_KEY"}`, rec.Body.String())
	assert.Zero(t, calls)
}

func TestNewServer_InvalidPrompt(t *testing.T) {
	cfg := testConfig("http://localhost", "k")
	cfg.PromptTemplate = "{{.Feeling"

	_, err := bootstrap.NewServer(cfg, nil, quietLogger())
	assert.Error(t, err)
}

func TestNewServer_UnknownProvider(t *testing.T) {
	cfg := testConfig("http://localhost", "k")
	cfg.LLMProvider = "oracle"

	_, err := bootstrap.NewServer(cfg, nil, quietLogger())
	assert.Error(t, err)
}
