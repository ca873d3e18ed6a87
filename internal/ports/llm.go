package ports

import "context"

// Generator sends a prompt to a generative-language API and returns the
// model's text output, all fragments concatenated.
type Generator interface {
	// Credential returns a *domain.ConfigError when the API credential is
	// not configured, nil otherwise. It never performs network I/O.
	Credential() error
	Generate(ctx context.Context, prompt string) (string, error)
}
