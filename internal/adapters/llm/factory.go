// Package llm selects the generation API adapter named by configuration.
package llm

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/randomtoy/vaas-go/internal/adapters/llm/gemini"
	"github.com/randomtoy/vaas-go/internal/adapters/llm/openrouter"
	"github.com/randomtoy/vaas-go/internal/config"
	"github.com/randomtoy/vaas-go/internal/ports"
)

func NewGenerator(cfg config.Config, httpClient *http.Client, logger *slog.Logger) (ports.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini, "":
		return gemini.NewClient(httpClient, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.LLMModel, logger), nil
	case config.ProviderOpenRouter:
		return openrouter.NewClient(httpClient, cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.LLMModel, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
