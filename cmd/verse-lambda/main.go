// Command verse-lambda serves the verse endpoint from AWS Lambda behind a
// Function URL or API Gateway.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/randomtoy/vaas-go/internal/bootstrap"
	"github.com/randomtoy/vaas-go/internal/config"
	"github.com/randomtoy/vaas-go/internal/lambdaapi"
	"github.com/randomtoy/vaas-go/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, config.FormatJSON, cfg.LogLevel)

	e, err := bootstrap.NewServer(cfg, &http.Client{}, log)
	if err != nil {
		log.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	log.Debug("starting verse Lambda handler", "provider", cfg.LLMProvider)
	lambda.Start(lambdaapi.NewHandler(e))
}
