package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/vaas-go/internal/app"
	"github.com/randomtoy/vaas-go/internal/domain"
)

const (
	allowedMethods = "GET, POST"

	// maxBodyBytes bounds POST bodies; a feeling is a short phrase.
	maxBodyBytes = 16 << 10
)

var versePaths = []string{"/api/verse", "/v1/verse"}

type Handler struct {
	svc    *app.VerseService
	logger *slog.Logger
}

func NewHandler(svc *app.VerseService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	for _, p := range versePaths {
		e.Any(p, h.Verse)
	}
}

func isVersePath(p string) bool {
	return slices.Contains(versePaths, p)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Verse serves GET ?feeling=... and POST with the same query parameter or a
// {"feeling": "..."} body.
func (h *Handler) Verse(c echo.Context) error {
	method := c.Request().Method
	if method != http.MethodGet && method != http.MethodPost {
		return methodNotAllowed(c)
	}

	feeling := strings.TrimSpace(c.QueryParam("feeling"))
	if feeling == "" && method == http.MethodPost {
		feeling = bodyFeeling(c)
	}

	verse, err := h.svc.Verse(c.Request().Context(), app.VerseRequest{Feeling: feeling})
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(http.StatusOK, VerseResponse{Text: verse.Text, Reference: verse.Reference})
}

func methodNotAllowed(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, allowedMethods)
	return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: domain.ErrMethodNotAllowed.Error()})
}

// bodyFeeling reads the feeling field from a JSON body of at most
// maxBodyBytes. Oversized, unreadable or malformed bodies yield an empty
// feeling.
func bodyFeeling(c echo.Context) string {
	body := c.Request().Body
	if body == nil {
		return ""
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Response(), body, maxBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var req VerseRequestBody
	if err := json.Unmarshal(raw, &req); err != nil {
		return ""
	}
	return strings.TrimSpace(req.Feeling)
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var (
		cfgErr   *domain.ConfigError
		upErr    *domain.UpstreamError
		shapeErr *domain.ShapeError
	)

	switch {
	case errors.As(err, &cfgErr):
		h.logger.Error("server misconfigured", "request_id", requestID, "setting", cfgErr.Setting)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: cfgErr.Error()})
	case errors.Is(err, domain.ErrMissingFeeling):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &upErr):
		h.logger.Error("upstream failure", "request_id", requestID, "status", upErr.Status, "error", err)
		status := upErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return c.JSON(status, ErrorResponse{Error: upErr.Message})
	case errors.As(err, &shapeErr):
		h.logger.Error("unusable model output", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: shapeErr.Message, Raw: shapeErr.Raw})
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
