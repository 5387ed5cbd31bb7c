package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/delivery/http/request"
	"github.com/user/seo-report/internal/delivery/http/response"
	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/usecase"
)

const maxRequestBody = 1 << 20

var errMissingURLKey = errors.New("missing 'url' key")

// HandleAnalyze serves POST /: crawl and analyse the posted URL and answer
// with the report envelope.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r.Header.Get("Content-Type")) {
		h.logger.Debug("rejecting non-JSON analysis request", zap.String("content_type", r.Header.Get("Content-Type")))
		h.writeJSONError(w, "Request must be JSON", http.StatusUnsupportedMediaType)
		return
	}

	var req request.AnalyzeRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req)
	if err == nil && req.URL == nil {
		err = errMissingURLKey
	}
	if err != nil {
		h.writeJSONError(w, fmt.Sprintf("Invalid JSON format or missing 'url' key: %v", err), http.StatusBadRequest)
		return
	}

	rawURL := *req.URL
	if strings.TrimSpace(rawURL) == "" {
		h.writeJSONError(w, usecase.ErrEmptyURL.Error(), http.StatusBadRequest)
		return
	}

	env, err := h.analyzer.Analyze(r.Context(), rawURL, req.Force)
	if err != nil {
		h.writeAnalysisError(w, rawURL, err)
		return
	}
	h.writeJSON(w, http.StatusOK, env)
}

func (h *Handler) writeAnalysisError(w http.ResponseWriter, rawURL string, err error) {
	status := http.StatusInternalServerError
	if usecase.KindOf(err) == entity.InvalidInput {
		status = http.StatusBadRequest
	}
	h.logger.Error("analysis failed",
		zap.String("url", rawURL),
		zap.Stringer("kind", usecase.KindOf(err)),
		zap.Error(err),
	)
	h.writeJSON(w, status, response.ErrorResponse{
		Message: fmt.Sprintf("An internal error occurred during analysis: %v", err),
		Success: false,
		Status:  status,
	})
}

// isJSON accepts application/json and any +json media type.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
