package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/delivery/http/handler"
	"github.com/user/seo-report/internal/delivery/http/middleware"
	"github.com/user/seo-report/pkg/metrics"
)

// APITimeout bounds the short JSON API routes. Analysis and page routes
// are bounded by the analysis and request timeouts instead.
const APITimeout = 30 * time.Second

func New(h *handler.Handler, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.HandlePage)
	r.Post("/", h.HandleAnalyze)
	r.Post("/report", h.HandleSubmit)
	r.Get("/view/state", h.HandleState)
	r.Get("/ws", h.HandleWebsocket)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(APITimeout))
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/reports", h.HandleGetReport)
		r.Get("/reports/recent", h.HandleRecent)
	})

	r.Handle("/metrics", m.Handler())

	return r
}
