// Package bootstrap wires configuration into a ready-to-serve echo instance.
// The HTTP server, the Lambda function and the Vercel function all start here.
package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/randomtoy/vaas-go/internal/adapters/http"
	"github.com/randomtoy/vaas-go/internal/adapters/llm"
	"github.com/randomtoy/vaas-go/internal/app"
	"github.com/randomtoy/vaas-go/internal/config"
	"github.com/randomtoy/vaas-go/internal/domain"
)

// NewServer builds the verse service and its HTTP surface from cfg.
// A missing API key is logged, not returned: the server still answers,
// reporting the misconfiguration per request.
func NewServer(cfg config.Config, httpClient *http.Client, log *slog.Logger) (*echo.Echo, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	gen, err := llm.NewGenerator(cfg, httpClient, log)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	if err := gen.Credential(); err != nil {
		log.Warn("verse requests will fail until the API key is set", "error", err)
	}

	prompt, err := domain.ParsePrompt(cfg.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("prompt template: %w", err)
	}

	svc := app.NewVerseService(gen, prompt, cfg.LLMTimeout, log)
	return httpadapter.NewServer(svc, log), nil
}
