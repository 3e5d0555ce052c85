package mailer

import "context"

// Address is a display name plus email address pair.
type Address struct {
	Name  string
	Email string
}

// Message is a single outgoing email.
type Message struct {
	From    Address
	To      Address
	Subject string
	HTML    string
}

// Mailer delivers a single message. Implementations may fail independently
// per call; callers decide whether a failure is fatal to their workflow.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
