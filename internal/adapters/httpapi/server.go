package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/plannerhq/planner-api/internal/app/activities"
	"github.com/plannerhq/planner-api/internal/app/links"
	"github.com/plannerhq/planner-api/internal/app/participants"
	"github.com/plannerhq/planner-api/internal/app/trips"
	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/activityrepo"
	"github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

// Server is the HTTP adapter over the application services.
type Server struct {
	Trips        *trips.Service
	Participants *participants.Service
	Activities   *activities.Service
	Links        *links.Service
}

func NewServer(tripsSvc *trips.Service, participantsSvc *participants.Service, activitiesSvc *activities.Service, linksSvc *links.Service) *Server {
	return &Server{
		Trips:        tripsSvc,
		Participants: participantsSvc,
		Activities:   activitiesSvc,
		Links:        linksSvc,
	}
}

const minTitleLength = 4

type createTripRequest struct {
	Destination    string    `json:"destination"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OwnerName      string    `json:"owner_name"`
	OwnerEmail     string    `json:"owner_email"`
	EmailsToInvite []string  `json:"emails_to_invite"`
}

func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fieldErrors := map[string][]string{}
	if len(req.Destination) < minTitleLength {
		fieldErrors["destination"] = append(fieldErrors["destination"], "must be at least 4 characters")
	}
	if req.StartsAt.IsZero() {
		fieldErrors["starts_at"] = append(fieldErrors["starts_at"], "must be a valid timestamp")
	}
	if req.EndsAt.IsZero() {
		fieldErrors["ends_at"] = append(fieldErrors["ends_at"], "must be a valid timestamp")
	}
	if !isValidEmail(req.OwnerEmail) {
		fieldErrors["owner_email"] = append(fieldErrors["owner_email"], "must be a valid email address")
	}
	for _, e := range req.EmailsToInvite {
		if !isValidEmail(e) {
			fieldErrors["emails_to_invite"] = append(fieldErrors["emails_to_invite"], fmt.Sprintf("%q is not a valid email address", e))
		}
	}
	if len(fieldErrors) > 0 {
		writeInvalidInput(w, fieldErrors)
		return
	}

	in := trips.CreateTripInput{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		OwnerName:      req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		EmailsToInvite: req.EmailsToInvite,
	}

	created, err := s.Trips.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tripId": created.ID})
}

type tripResponse struct {
	ID          domain.TripID `json:"id"`
	Destination string        `json:"destination"`
	StartsAt    time.Time     `json:"starts_at"`
	EndsAt      time.Time     `json:"ends_at"`
	IsConfirmed bool          `json:"is_confirmed"`
}

func toTripResponse(t triprepo.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		IsConfirmed: t.IsConfirmed,
	}
}

func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	t, err := s.Trips.Get(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trip": toTripResponse(t)})
}

type updateTripRequest struct {
	Destination nullable.Nullable[string]    `json:"destination"`
	StartsAt    nullable.Nullable[time.Time] `json:"starts_at"`
	EndsAt      nullable.Nullable[time.Time] `json:"ends_at"`
}

func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	var req updateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fieldErrors := map[string][]string{}
	var in trips.UpdateTripInput
	if req.Destination.IsSpecified() {
		if req.Destination.IsNull() {
			fieldErrors["destination"] = append(fieldErrors["destination"], "must not be null")
		} else if v := req.Destination.MustGet(); len(v) < minTitleLength {
			fieldErrors["destination"] = append(fieldErrors["destination"], "must be at least 4 characters")
		} else {
			in.Destination = trips.Some(v)
		}
	}
	if req.StartsAt.IsSpecified() {
		if req.StartsAt.IsNull() {
			fieldErrors["starts_at"] = append(fieldErrors["starts_at"], "must not be null")
		} else {
			in.StartsAt = trips.Some(req.StartsAt.MustGet())
		}
	}
	if req.EndsAt.IsSpecified() {
		if req.EndsAt.IsNull() {
			fieldErrors["ends_at"] = append(fieldErrors["ends_at"], "must not be null")
		} else {
			in.EndsAt = trips.Some(req.EndsAt.MustGet())
		}
	}
	if len(fieldErrors) > 0 {
		writeInvalidInput(w, fieldErrors)
		return
	}

	t, err := s.Trips.Update(r.Context(), tripID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trip": toTripResponse(t)})
}

func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	redirect, err := s.Trips.Confirm(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

type createInviteRequest struct {
	Email string `json:"email"`
}

func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	var req createInviteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !isValidEmail(req.Email) {
		writeInvalidInput(w, map[string][]string{"email": {"must be a valid email address"}})
		return
	}

	participantID, err := s.Participants.Invite(r.Context(), tripID, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"participantId": participantID})
}

func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "participantId")
	if _, err := uuid.Parse(raw); err != nil {
		writeInvalidInput(w, map[string][]string{"participantId": {"must be a valid UUID"}})
		return
	}
	redirect, err := s.Participants.Confirm(r.Context(), domain.ParticipantID(raw))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

type participantResponse struct {
	ID          domain.ParticipantID `json:"id"`
	Email       string               `json:"email"`
	IsOwner     bool                 `json:"is_owner"`
	IsConfirmed bool                 `json:"is_confirmed"`
}

func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	ps, err := s.Participants.List(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]participantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, participantResponse{
			ID:          p.ID,
			Email:       p.Email,
			IsOwner:     p.IsOwner,
			IsConfirmed: p.IsConfirmed,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"participants": out})
}

type createActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	var req createActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fieldErrors := map[string][]string{}
	if len(req.Title) < minTitleLength {
		fieldErrors["title"] = append(fieldErrors["title"], "must be at least 4 characters")
	}
	if req.OccursAt.IsZero() {
		fieldErrors["occurs_at"] = append(fieldErrors["occurs_at"], "must be a valid timestamp")
	}
	if len(fieldErrors) > 0 {
		writeInvalidInput(w, fieldErrors)
		return
	}

	activityID, err := s.Activities.Create(r.Context(), tripID, req.Title, req.OccursAt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"activityId": activityID})
}

type activityResponse struct {
	ID       domain.ActivityID `json:"id"`
	Title    string            `json:"title"`
	OccursAt time.Time         `json:"occurs_at"`
}

type activityDayResponse struct {
	Date       time.Time          `json:"date"`
	Activities []activityResponse `json:"activities"`
}

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	days, err := s.Activities.List(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]activityDayResponse, 0, len(days))
	for _, d := range days {
		acts := make([]activityResponse, 0, len(d.Activities))
		for _, a := range d.Activities {
			acts = append(acts, toActivityResponse(a))
		}
		out = append(out, activityDayResponse{Date: d.Date, Activities: acts})
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": out})
}

func toActivityResponse(a activityrepo.Activity) activityResponse {
	return activityResponse{ID: a.ID, Title: a.Title, OccursAt: a.OccursAt}
}

type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	var req createLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fieldErrors := map[string][]string{}
	if len(req.Title) < minTitleLength {
		fieldErrors["title"] = append(fieldErrors["title"], "must be at least 4 characters")
	}
	if req.URL == "" {
		fieldErrors["url"] = append(fieldErrors["url"], "must be a valid URL")
	}
	if len(fieldErrors) > 0 {
		writeInvalidInput(w, fieldErrors)
		return
	}

	linkID, err := s.Links.Create(r.Context(), tripID, req.Title, req.URL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"linkId": linkID})
}

type linkResponse struct {
	ID    domain.LinkID `json:"id"`
	Title string        `json:"title"`
	URL   string        `json:"url"`
}

func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, ok := parseTripID(w, r)
	if !ok {
		return
	}
	ls, err := s.Links.List(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]linkResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, linkResponse{ID: l.ID, Title: l.Title, URL: l.URL})
	}
	writeJSON(w, http.StatusOK, map[string]any{"links": out})
}

// parseTripID validates the tripId path parameter; on failure it writes the
// field-level validation response and returns ok=false.
func parseTripID(w http.ResponseWriter, r *http.Request) (domain.TripID, bool) {
	raw := chi.URLParam(r, "tripId")
	if _, err := uuid.Parse(raw); err != nil {
		writeInvalidInput(w, map[string][]string{"tripId": {"must be a valid UUID"}})
		return "", false
	}
	return domain.TripID(raw), true
}

// decodeBody decodes the JSON request body into dst; on failure it writes the
// validation response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeInvalidInput(w, map[string][]string{"body": {"malformed request body"}})
		return false
	}
	return true
}

// isValidEmail applies the same format rule the email wire type enforces on
// unmarshal, so each handler can report the violation under the request's own
// field name.
func isValidEmail(s string) bool {
	var e openapi_types.Email
	return e.UnmarshalJSON([]byte(strconv.Quote(s))) == nil
}
