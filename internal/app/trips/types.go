package trips

import (
	"time"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
)

// Optional is a two-state field used to distinguish omitted from specified.
type Optional[T any] struct {
	specified bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) Value() T          { return o.value }

// Config carries the deployment-specific values the workflows embed into
// redirect targets and confirmation links. It is explicit constructor input,
// never ambient state.
type Config struct {
	// WebBaseURL is the frontend origin redirect targets point at.
	WebBaseURL string
	// APIBaseURL is this API's origin, used in emailed confirmation links.
	APIBaseURL string

	// Sender is the From address on outgoing mail.
	Sender mailer.Address

	// MailTimeout bounds each individual dispatch; zero means no bound.
	MailTimeout time.Duration
}

type CreateTripInput struct {
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time

	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// TripCreated is the minimal response returned when a trip is created.
type TripCreated struct {
	ID domain.TripID
}

type UpdateTripInput struct {
	Destination Optional[string]
	StartsAt    Optional[time.Time]
	EndsAt      Optional[time.Time]
}
