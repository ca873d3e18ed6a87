// Package handler is the Vercel serverless entrypoint for /api/verse.
package handler

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/randomtoy/vaas-go/internal/bootstrap"
	"github.com/randomtoy/vaas-go/internal/config"
	"github.com/randomtoy/vaas-go/internal/logger"
)

var (
	once       sync.Once
	httpHandle http.Handler
	initErr    error
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	log := logger.New(os.Stdout, config.FormatJSON, cfg.LogLevel)
	httpHandle, initErr = bootstrap.NewServer(cfg, &http.Client{}, log)
}

// Handler is invoked by the Vercel Go runtime for every request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)

	if initErr != nil {
		slog.Error("service initialization failed", "error", initErr)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"service initialization failed"}`))
		return
	}
	httpHandle.ServeHTTP(w, r)
}
