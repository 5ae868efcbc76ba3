package qrsession

import "errors"

var (
	// ErrNotFound covers both a token that never existed and one already
	// expired. Callers must not distinguish the two.
	ErrNotFound       = errors.New("session not found")
	ErrDuplicateToken = errors.New("session token already present")
)

// RecordResult is the outcome of an attendee insertion.
type RecordResult int

const (
	RecordOK RecordResult = iota
	RecordAlreadyMarked
	RecordNotFound
)

// Store holds active QR sessions keyed by token. Implementations must treat
// an expired-but-present entry as absent on every read path, regardless of
// any background reclamation they also run.
type Store interface {
	// Put inserts a session. ErrDuplicateToken if the token is taken.
	Put(s *Session) error
	// Get returns a live session or ErrNotFound.
	Get(token string) (*Session, error)
	// Remove deletes a session. Removing an absent token is a no-op.
	Remove(token string)
	// RecordAttendee atomically checks membership and inserts the student
	// into the session's attendee set. This is the only mutation path for
	// attendees.
	RecordAttendee(token, studentID string) RecordResult
	// Close makes the session immediately unreachable (teacher ends early).
	Close(token string)
}
