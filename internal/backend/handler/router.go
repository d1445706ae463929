package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dcert/internal/platform/metrics"
	"dcert/internal/platform/middleware"
)

// HealthCheck reports readiness of one backing dependency.
type HealthCheck func(ctx context.Context) error

// NewRouter assembles the backend HTTP surface. Health and metrics endpoints
// are unauthenticated; everything under /v1 requires a bearer token.
func NewRouter(h *Handler, validator middleware.JWTValidator, logger *slog.Logger, m *metrics.Metrics, requestTimeout time.Duration, checks map[string]HealthCheck) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", healthz(checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))

		r.Route("/ledger-records", func(r chi.Router) {
			r.Post("/", h.CreateLedgerRecord)
			r.Route("/{lineageID}", func(r chi.Router) {
				r.Put("/", h.UpdateLedgerRecord)
				r.Get("/", h.GetLedgerRecord)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/", h.Notify)
			r.Get("/", h.Inbox)
		})

		r.Route("/dids/{did}/document", func(r chi.Router) {
			r.Put("/", h.PublishDocument)
			r.Get("/", h.GetDocument)
		})

		r.Route("/presentation-requests", func(r chi.Router) {
			r.Post("/", h.CreatePresentationRequest)
			r.Get("/", h.ListPresentationRequests)
			r.Route("/{requestID}", func(r chi.Router) {
				r.Get("/", h.GetPresentationRequest)
				r.Post("/accept", h.AcceptPresentationRequest)
				r.Post("/decline", h.DeclinePresentationRequest)
			})
		})
	})

	return r
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := map[string]string{}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "failed": failed})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
