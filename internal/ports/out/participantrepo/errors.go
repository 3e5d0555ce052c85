package participantrepo

import "errors"

var (
	// ErrNotFound indicates the requested participant does not exist.
	ErrNotFound = errors.New("participant not found")

	// ErrAlreadyExists indicates a participant already exists with the provided ID.
	ErrAlreadyExists = errors.New("participant already exists")
)
