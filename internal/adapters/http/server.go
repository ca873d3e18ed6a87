package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/randomtoy/vaas-go/internal/app"
)

// NewServer builds the echo instance shared by every entrypoint.
func NewServer(svc *app.VerseService, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(RequestIDMiddleware())
	e.Use(NoStoreMiddleware())
	e.Use(LoggingMiddleware(logger))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered", "request_id", c.Get("request_id"), "error", err, "stack", string(stack))
			return err
		},
	}))

	NewHandler(svc, logger).Register(e)
	return e
}

// ErrorHandler writes every unhandled error as an ErrorResponse.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusMethodNotAllowed && isVersePath(c.Request().URL.Path) {
			// The router rejects methods outside its own list before Verse runs.
			if err := methodNotAllowed(c); err != nil {
				logger.Error("failed to write error response", "error", err)
			}
			return
		}
		if errors.As(err, &he) {
			status = he.Code
			msg = ""
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		} else {
			logger.Error("unhandled error", "request_id", c.Get("request_id"), "error", err)
		}
		if msg == "" {
			msg = http.StatusText(status)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: msg})
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
