package mailer

import (
	"context"
	"sync"

	"github.com/plannerhq/planner-api/internal/ports/out/mailer"
)

// Recorder is an in-memory mailer.Mailer that records every message instead
// of delivering it. Tests use it to assert dispatch counts and contents, and
// individual recipients can be made to fail to exercise best-effort semantics.
type Recorder struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failFor map[string]error
}

func NewRecorder() *Recorder {
	return &Recorder{failFor: make(map[string]error)}
}

// FailFor makes every Send to the given recipient address return err.
// The failed message is still recorded as an attempt.
func (r *Recorder) FailFor(email string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failFor[email] = err
}

func (r *Recorder) Send(ctx context.Context, msg mailer.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	if err, ok := r.failFor[msg.To.Email]; ok {
		return err
	}
	return nil
}

// Sent returns a copy of all dispatch attempts in order of arrival.
func (r *Recorder) Sent() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Message(nil), r.sent...)
}
