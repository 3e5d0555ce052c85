package participants_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	memmailer "github.com/plannerhq/planner-api/internal/adapters/memory/mailer"
	memparticipantrepo "github.com/plannerhq/planner-api/internal/adapters/memory/participantrepo"
	memtriprepo "github.com/plannerhq/planner-api/internal/adapters/memory/triprepo"
	"github.com/plannerhq/planner-api/internal/app/participants"
	"github.com/plannerhq/planner-api/internal/domain"
	portmailer "github.com/plannerhq/planner-api/internal/ports/out/mailer"
	portparticipantrepo "github.com/plannerhq/planner-api/internal/ports/out/participantrepo"
	porttriprepo "github.com/plannerhq/planner-api/internal/ports/out/triprepo"
)

var testConfig = participants.Config{
	WebBaseURL: "https://web.example.com",
	APIBaseURL: "https://api.example.com",
	Sender:     portmailer.Address{Name: "Trip Planner", Email: "hello@planner.local"},
}

func newFixture(t *testing.T) (*memtriprepo.Repo, *memparticipantrepo.Repo, *memmailer.Recorder, *participants.Service) {
	t.Helper()
	tripsRepo := memtriprepo.NewRepo()
	participantsRepo := memparticipantrepo.NewRepo()
	mail := memmailer.NewRecorder()
	svc := participants.NewService(tripsRepo, participantsRepo, mail, testConfig)
	return tripsRepo, participantsRepo, mail, svc
}

func seedTrip(t *testing.T, repo *memtriprepo.Repo, id domain.TripID) {
	t.Helper()
	if err := repo.Create(context.Background(), porttriprepo.Trip{
		ID:          id,
		Destination: "Lisbon",
		StartsAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Unix(100, 0).UTC(),
	}); err != nil {
		t.Fatalf("create trip: %v", err)
	}
}

func TestService_Invite_PersistsThenSendsOneMail(t *testing.T) {
	t.Parallel()

	tripsRepo, participantsRepo, mail, svc := newFixture(t)
	seedTrip(t, tripsRepo, "t1")
	svc.SetNewParticipantIDForTest(func() domain.ParticipantID { return "p1" })

	id, err := svc.Invite(context.Background(), "t1", "alice@example.com")
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if id != "p1" {
		t.Fatalf("id=%s", id)
	}

	p, err := participantsRepo.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.IsOwner || p.IsConfirmed || p.Email != "alice@example.com" || p.TripID != "t1" {
		t.Fatalf("participant=%+v", p)
	}

	sent := mail.Sent()
	if len(sent) != 1 {
		t.Fatalf("dispatches=%d, want 1", len(sent))
	}
	if sent[0].To.Email != "alice@example.com" {
		t.Fatalf("to=%s", sent[0].To.Email)
	}
	if !strings.Contains(sent[0].HTML, "https://api.example.com/participants/p1/confirm") {
		t.Fatalf("mail missing confirmation link: %s", sent[0].HTML)
	}
	if !strings.Contains(sent[0].Subject, "Lisbon") || !strings.Contains(sent[0].Subject, "June 1, 2024") {
		t.Fatalf("subject=%q", sent[0].Subject)
	}
}

func TestService_Invite_UnknownTrip(t *testing.T) {
	t.Parallel()

	_, participantsRepo, mail, svc := newFixture(t)

	_, err := svc.Invite(context.Background(), "missing", "alice@example.com")
	var ae *participants.Error
	if !errors.As(err, &ae) || ae.Status != 400 || ae.Message != "Trip not found" {
		t.Fatalf("err=%v", err)
	}
	ps, _ := participantsRepo.ListByTrip(context.Background(), "missing")
	if len(ps) != 0 {
		t.Fatalf("participants=%d, want 0", len(ps))
	}
	if len(mail.Sent()) != 0 {
		t.Fatalf("dispatches=%d, want 0", len(mail.Sent()))
	}
}

func TestService_Invite_MailFailureKeepsParticipant(t *testing.T) {
	t.Parallel()

	tripsRepo, participantsRepo, mail, svc := newFixture(t)
	seedTrip(t, tripsRepo, "t1")
	mail.FailFor("alice@example.com", fmt.Errorf("smtp down"))

	id, err := svc.Invite(context.Background(), "t1", "alice@example.com")
	if err != nil {
		t.Fatalf("Invite must not propagate dispatch failure: %v", err)
	}
	if _, err := participantsRepo.GetByID(context.Background(), id); err != nil {
		t.Fatalf("participant row must remain after mail failure: %v", err)
	}
}

func TestService_Confirm_SetsConfirmedAndRedirects(t *testing.T) {
	t.Parallel()

	tripsRepo, participantsRepo, _, svc := newFixture(t)
	seedTrip(t, tripsRepo, "t1")
	if err := participantsRepo.Create(context.Background(), portparticipantrepo.Participant{
		ID: "p1", TripID: "t1", Email: "alice@example.com", CreatedAt: time.Unix(200, 0).UTC(),
	}); err != nil {
		t.Fatalf("create participant: %v", err)
	}

	redirect, err := svc.Confirm(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if redirect != "https://web.example.com/trips/t1" {
		t.Fatalf("redirect=%q", redirect)
	}
	p, _ := participantsRepo.GetByID(context.Background(), "p1")
	if !p.IsConfirmed {
		t.Fatalf("participant not confirmed")
	}

	// Re-entry is a no-op redirect.
	redirect, err = svc.Confirm(context.Background(), "p1")
	if err != nil || redirect != "https://web.example.com/trips/t1" {
		t.Fatalf("redirect=%q err=%v", redirect, err)
	}
}

func TestService_Confirm_UnknownParticipant(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newFixture(t)

	_, err := svc.Confirm(context.Background(), "missing")
	var ae *participants.Error
	if !errors.As(err, &ae) || ae.Message != "Participant not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestService_List_ReturnsAllParticipants(t *testing.T) {
	t.Parallel()

	tripsRepo, participantsRepo, _, svc := newFixture(t)
	seedTrip(t, tripsRepo, "t1")
	for i, email := range []string{"owner@example.com", "alice@example.com"} {
		if err := participantsRepo.Create(context.Background(), portparticipantrepo.Participant{
			ID:        domain.ParticipantID(fmt.Sprintf("p%d", i+1)),
			TripID:    "t1",
			Email:     email,
			IsOwner:   i == 0,
			CreatedAt: time.Unix(int64(100+i), 0).UTC(),
		}); err != nil {
			t.Fatalf("create participant: %v", err)
		}
	}

	ps, err := svc.List(context.Background(), "t1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != 2 || ps[0].Email != "owner@example.com" || ps[1].Email != "alice@example.com" {
		t.Fatalf("participants=%+v", ps)
	}
}
