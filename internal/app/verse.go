package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/randomtoy/vaas-go/internal/domain"
	"github.com/randomtoy/vaas-go/internal/ports"
)

// DefaultTimeout bounds the upstream call when none is configured.
const DefaultTimeout = 15 * time.Second

// VerseRequest is the application-level input (no HTTP types).
type VerseRequest struct {
	Feeling string `validate:"required"`
}

// VerseService turns a feeling into a single verse.
type VerseService struct {
	generator ports.Generator
	prompt    *domain.Prompt
	timeout   time.Duration
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewVerseService(gen ports.Generator, prompt *domain.Prompt, timeout time.Duration, logger *slog.Logger) *VerseService {
	if prompt == nil {
		prompt = domain.MustParsePrompt(domain.DefaultPromptTemplate)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VerseService{
		generator: gen,
		prompt:    prompt,
		timeout:   timeout,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Verse checks configuration and input, makes exactly one upstream call and
// recovers a verse from whatever the model returned.
func (s *VerseService) Verse(ctx context.Context, req VerseRequest) (domain.Verse, error) {
	if err := s.generator.Credential(); err != nil {
		return domain.Verse{}, err
	}

	req.Feeling = strings.TrimSpace(req.Feeling)
	if err := s.validate.Struct(req); err != nil {
		return domain.Verse{}, domain.ErrMissingFeeling
	}

	prompt, err := s.prompt.Build(req.Feeling)
	if err != nil {
		return domain.Verse{}, fmt.Errorf("build prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.DebugContext(ctx, "requesting verse", "feeling", req.Feeling)

	start := time.Now()
	raw, err := s.generator.Generate(ctx, prompt)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Verse{}, &domain.UpstreamError{
				Status:  http.StatusGatewayTimeout,
				Message: domain.ErrUpstreamTimeout.Error(),
				Err:     errors.Join(domain.ErrUpstreamTimeout, err),
			}
		}
		return domain.Verse{}, fmt.Errorf("generate: %w", err)
	}

	verse, err := domain.ParseVerse(raw)
	if err != nil {
		return domain.Verse{}, fmt.Errorf("parse model output: %w", err)
	}

	if verse.Reference == domain.ReferenceUnavailable {
		s.logger.WarnContext(ctx, "model output did not match verse shape", "latency_ms", latency)
	} else {
		s.logger.DebugContext(ctx, "verse generated", "reference", verse.Reference, "latency_ms", latency)
	}

	return verse, nil
}
