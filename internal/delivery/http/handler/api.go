package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/delivery/http/response"
	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/repository"
	"github.com/user/seo-report/internal/usecase"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// HandleHealthCheck pings every configured dependency.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Dependencies = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			h.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
			resp.Dependencies[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}
	h.writeJSON(w, status, resp)
}

// HandleGetReport serves GET /api/reports?url=: the latest stored report.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		h.writeJSONError(w, "URL query parameter is required", http.StatusBadRequest)
		return
	}

	report, err := h.analyzer.LatestReport(r.Context(), rawURL)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSONError(w, "No report found for the given URL", http.StatusNotFound)
		return
	case usecase.KindOf(err) == entity.InvalidInput:
		h.writeJSONError(w, "Invalid URL format in query parameter", http.StatusBadRequest)
		return
	default:
		h.logger.Error("failed to load report", zap.String("url", rawURL), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.ReportResponse{
		ID:        report.ID,
		URL:       report.URL,
		CreatedAt: report.CreatedAt,
		Report:    report.Envelope,
	})
}

// HandleRecent serves GET /api/reports/recent?limit=.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultRecentLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			h.writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRecentLimit)
	}

	urls, err := h.analyzer.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list recent URLs", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if urls == nil {
		urls = []string{}
	}
	h.writeJSON(w, http.StatusOK, response.RecentResponse{URLs: urls})
}
