package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter constructs the API HTTP router.
//
// This is intentionally a thin adapter: handlers decode and validate request
// shapes, delegate to the application services, and map results back to the
// wire. Route semantics live in internal/app.
func NewRouter(s *Server, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newRequestLogger(log))
	r.Use(middleware.Recoverer)

	// Health and metrics endpoints are deliberately outside the API contract
	// (used for infra checks and scraping).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Get("/confirm", s.ConfirmTrip)
			r.Post("/invites", s.CreateInvite)
			r.Get("/participants", s.ListParticipants)
			r.Post("/activities", s.CreateActivity)
			r.Get("/activities", s.ListActivities)
			r.Post("/links", s.CreateLink)
			r.Get("/links", s.ListLinks)
		})
	})
	r.Get("/participants/{participantId}/confirm", s.ConfirmParticipant)

	return r
}
