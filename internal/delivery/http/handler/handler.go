package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/delivery/http/response"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/usecase"
	"github.com/user/seo-report/internal/view"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	analyzer usecase.Analyzer
	sessions *view.Sessions
	registry *render.Registry
	logger   *zap.Logger
	checks   map[string]Checker
	upgrader websocket.Upgrader

	pingInterval time.Duration
}

// Options configures the optional parts of a Handler.
type Options struct {
	// Checks are pinged by the health endpoint, keyed by dependency name.
	Checks map[string]Checker
	// PingInterval is how often idle websocket connections are pinged.
	PingInterval time.Duration
}

func NewHandler(analyzer usecase.Analyzer, sessions *view.Sessions, registry *render.Registry, logger *zap.Logger, opts Options) *Handler {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	return &Handler{
		analyzer:     analyzer,
		sessions:     sessions,
		registry:     registry,
		logger:       logger,
		checks:       opts.Checks,
		pingInterval: opts.PingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Message: message, Success: false})
}

// NotFound renders the HTML not-found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeStatusPage(w, http.StatusNotFound, "Page not found", r.URL.Path)
}

// MethodNotAllowed renders the HTML page for unsupported methods.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeStatusPage(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" "+r.URL.Path)
}

func (h *Handler) writeStatusPage(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.registry.StatusPage(w, render.StatusPageView{Code: status, Title: title, Detail: detail}); err != nil {
		h.logger.Error("failed to render status page", zap.Int("status", status), zap.Error(err))
	}
}
