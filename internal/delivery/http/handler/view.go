package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/client"
	"github.com/user/seo-report/internal/view"
)

// websocketClient marks form posts whose result is delivered over /ws.
const websocketClient = "websocket"

// HandlePage serves GET /: the report page in its current state.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	v := h.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.registry.Page(w, v.Page().Snapshot()); err != nil {
		h.logger.Error("failed to render report page", zap.Error(err))
	}
}

// HandleSubmit serves POST /report. Websocket-driven pages get 204 at once
// and follow the cycle over /ws; plain form posts wait for the cycle and
// are redirected back to the page.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	v := h.session(w, r)

	if err := r.ParseForm(); err != nil {
		h.writeStatusPage(w, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	rawURL := r.PostFormValue("url")

	if r.Header.Get("X-Requested-With") == websocketClient {
		ctx := context.WithoutCancel(r.Context())
		go h.submit(ctx, v, rawURL)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.submit(r.Context(), v, rawURL)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// submit runs one report cycle. Its outcome is already on the page, so
// errors are only logged.
func (h *Handler) submit(ctx context.Context, v *view.ReportView, rawURL string) {
	err := v.Submit(ctx, rawURL)
	switch {
	case err == nil:
	case errors.Is(err, view.ErrSuperseded), errors.Is(err, client.ErrEmptyURL):
		h.logger.Debug("report cycle ended early", zap.String("url", rawURL), zap.Error(err))
	default:
		h.logger.Info("report cycle failed", zap.String("url", rawURL), zap.Error(err))
	}
}

// HandleState serves GET /view/state: the session's view as JSON.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	v := h.session(w, r)
	h.writeJSON(w, http.StatusOK, v.Snapshot())
}
