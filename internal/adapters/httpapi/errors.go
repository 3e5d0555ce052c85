package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/plannerhq/planner-api/internal/app/activities"
	"github.com/plannerhq/planner-api/internal/app/links"
	"github.com/plannerhq/planner-api/internal/app/participants"
	"github.com/plannerhq/planner-api/internal/app/trips"
)

// errorResponse is the error body shape for every failure mode:
// domain failures carry a single message, schema failures additionally carry
// a per-field error map.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeInvalidInput reports schema-level validation failures with
// field-level detail.
func writeInvalidInput(w http.ResponseWriter, fieldErrors map[string][]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid input", Errors: fieldErrors})
}

// writeServiceError maps application-layer errors onto the response contract:
// typed domain errors become a client-visible message with their status,
// everything else becomes an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		te *trips.Error
		pe *participants.Error
		ae *activities.Error
		le *links.Error
	)
	switch {
	case errors.As(err, &te):
		writeMessage(w, te.Status, te.Message)
	case errors.As(err, &pe):
		writeMessage(w, pe.Status, pe.Message)
	case errors.As(err, &ae):
		writeMessage(w, ae.Status, ae.Message)
	case errors.As(err, &le):
		writeMessage(w, le.Status, le.Message)
	default:
		slog.ErrorContext(r.Context(), "unhandled error",
			"error", err, "request_id", middleware.GetReqID(r.Context()))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
