package qrsession

import (
	"time"
)

// Session is a server-held record authorizing attendance scans for one class
// occurrence. It lives only in process memory; losing it on restart is
// acceptable (the teacher regenerates).
type Session struct {
	Token     string    `json:"token"`
	SubjectID string    `json:"subjectId"`
	TeacherID string    `json:"teacherId"`
	ClassDate string    `json:"classDate"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	attendees map[string]struct{}
}

// NewSession builds a session for a (subject, teacher, date) tuple with an
// empty attendee set.
func NewSession(token, subjectID, teacherID, classDate string, now time.Time, validity time.Duration) *Session {
	return &Session{
		Token:     token,
		SubjectID: subjectID,
		TeacherID: teacherID,
		ClassDate: classDate,
		CreatedAt: now,
		ExpiresAt: now.Add(validity),
		attendees: make(map[string]struct{}),
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Attendees returns a copy of the attendee set as a slice. Order is not
// significant.
func (s *Session) Attendees() []string {
	out := make([]string, 0, len(s.attendees))
	for id := range s.attendees {
		out = append(out, id)
	}
	return out
}

func (s *Session) AttendeeCount() int {
	return len(s.attendees)
}

func (s *Session) hasAttendee(studentID string) bool {
	_, ok := s.attendees[studentID]
	return ok
}

func (s *Session) addAttendee(studentID string) {
	s.attendees[studentID] = struct{}{}
}

// snapshot copies the session, attendee set included, so callers can read it
// without holding the store lock.
func (s *Session) snapshot() *Session {
	cp := *s
	cp.attendees = make(map[string]struct{}, len(s.attendees))
	for id := range s.attendees {
		cp.attendees[id] = struct{}{}
	}
	return &cp
}
