package domain

// TripID is an internal identifier for a trip record.
type TripID string

// ParticipantID is an internal identifier for a participant record.
type ParticipantID string

// ActivityID is an internal identifier for an activity record.
type ActivityID string

// LinkID is an internal identifier for a trip link record.
type LinkID string
