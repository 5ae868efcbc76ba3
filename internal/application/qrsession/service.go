package qrsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/campus-hub/campus-hub/internal/domain/qrsession"
	"github.com/campus-hub/campus-hub/internal/infrastructure/sse"
)

// Validity window bounds for an issued session.
const (
	MinValidity = time.Minute
	MaxValidity = time.Hour
)

// RejectReason is the fixed taxonomy of scan failures. Every reason is a
// terminal, user-facing outcome; nothing here is retried automatically.
type RejectReason string

const (
	ReasonMalformedPayload RejectReason = "MALFORMED_PAYLOAD"
	// ReasonUnknownOrExpired deliberately covers both "never existed" and
	// "expired" so callers cannot probe session lifetimes.
	ReasonUnknownOrExpired RejectReason = "UNKNOWN_OR_EXPIRED_SESSION"
	ReasonPayloadTampering RejectReason = "PAYLOAD_TAMPERING"
	ReasonAlreadyScanned   RejectReason = "ALREADY_SCANNED"
)

// Rejection is a typed scan refusal.
type Rejection struct {
	Reason RejectReason
}

func (r *Rejection) Error() string {
	return "scan rejected: " + string(r.Reason)
}

// Grant is the one-shot result of an accepted scan, consumed immediately by
// the caller's attendance persistence call.
type Grant struct {
	SubjectID string `json:"subjectId"`
	TeacherID string `json:"teacherId"`
	ClassDate string `json:"classDate"`
}

// IssueResult is returned to the teacher-facing caller.
type IssueResult struct {
	Token          string    `json:"token"`
	EncodedPayload string    `json:"encodedPayload"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// StatusResult reports live session progress.
type StatusResult struct {
	TotalMarked int       `json:"totalMarked"`
	StudentIDs  []string  `json:"studentIds"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

var ErrNotFound = domain.ErrNotFound

// Service owns the QR attendance session lifecycle: issuance, validation,
// status and early close.
type Service struct {
	store  domain.Store
	hub    *sse.Hub
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates the QR session service. hub may be nil when no live feed
// is wanted.
func NewService(store domain.Store, hub *sse.Hub, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		hub:    hub,
		logger: logger.With().Str("service", "qrsession").Logger(),
		now:    time.Now,
	}
}

// Issue mints a token, registers a session bounded by validity and returns
// the payload to render as a barcode. Eviction relies on the store's passive
// expiry check plus its sweep; no per-session timer is scheduled.
func (s *Service) Issue(ctx context.Context, subjectID, teacherID, classDate string, validity time.Duration) (*IssueResult, error) {
	_ = ctx
	if subjectID == "" || teacherID == "" || classDate == "" {
		return nil, errors.New("subject, teacher and class date are required")
	}
	if validity < MinValidity || validity > MaxValidity {
		return nil, fmt.Errorf("validity must be between %s and %s", MinValidity, MaxValidity)
	}

	token, err := domain.GenerateToken()
	if err != nil {
		return nil, err
	}
	sess := domain.NewSession(token, subjectID, teacherID, classDate, s.now().UTC(), validity)
	if err := s.store.Put(sess); err != nil {
		return nil, err
	}
	payload, err := domain.EncodePayload(sess)
	if err != nil {
		s.store.Remove(token)
		return nil, err
	}

	s.logger.Info().
		Str("subject_id", subjectID).
		Str("teacher_id", teacherID).
		Str("class_date", classDate).
		Time("expires_at", sess.ExpiresAt).
		Msg("qr session issued")
	return &IssueResult{Token: token, EncodedPayload: payload, ExpiresAt: sess.ExpiresAt}, nil
}

// Validate runs the scan pipeline: decode, lookup, expiry recheck, field
// cross-check, then the atomic duplicate check and attendee insert.
func (s *Service) Validate(ctx context.Context, rawPayload, studentID string) (*Grant, *Rejection) {
	_ = ctx
	payload, err := domain.DecodePayload(rawPayload)
	if err != nil {
		return nil, &Rejection{Reason: ReasonMalformedPayload}
	}

	sess, err := s.store.Get(payload.Token)
	if err != nil {
		return nil, &Rejection{Reason: ReasonUnknownOrExpired}
	}

	// The store already filters expired entries; recheck anyway so a stale
	// read can never slip through.
	if sess.IsExpired(s.now()) {
		return nil, &Rejection{Reason: ReasonUnknownOrExpired}
	}

	// The payload's claims are untrusted. A forged payload can carry a real
	// token while lying about subject or date.
	if payload.SubjectID != sess.SubjectID ||
		payload.TeacherID != sess.TeacherID ||
		payload.ClassDate != sess.ClassDate ||
		!payload.ExpiresAt.Equal(sess.ExpiresAt) {
		s.logger.Warn().Str("student_id", studentID).Msg("payload field mismatch on scan")
		return nil, &Rejection{Reason: ReasonPayloadTampering}
	}

	switch s.store.RecordAttendee(payload.Token, studentID) {
	case domain.RecordOK:
	case domain.RecordAlreadyMarked:
		return nil, &Rejection{Reason: ReasonAlreadyScanned}
	default:
		return nil, &Rejection{Reason: ReasonUnknownOrExpired}
	}

	s.publishScan(payload.Token, studentID)
	s.logger.Info().
		Str("student_id", studentID).
		Str("subject_id", sess.SubjectID).
		Msg("scan accepted")
	return &Grant{SubjectID: sess.SubjectID, TeacherID: sess.TeacherID, ClassDate: sess.ClassDate}, nil
}

// Status reports who has scanned so far. ErrNotFound for an unknown or
// expired token, which is distinct from an empty attendee list.
func (s *Service) Status(ctx context.Context, token string) (*StatusResult, error) {
	_ = ctx
	sess, err := s.store.Get(token)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		TotalMarked: sess.AttendeeCount(),
		StudentIDs:  sess.Attendees(),
		ExpiresAt:   sess.ExpiresAt,
	}, nil
}

// Close ends a session early. Subsequent validations observe NotFound.
func (s *Service) Close(ctx context.Context, token string) {
	_ = ctx
	s.store.Close(token)
	s.logger.Info().Msg("qr session closed")
}

func (s *Service) publishScan(token, studentID string) {
	if s.hub == nil {
		return
	}
	total := 0
	if snap, err := s.store.Get(token); err == nil {
		total = snap.AttendeeCount()
	}
	data, err := json.Marshal(map[string]interface{}{
		"studentId":   studentID,
		"totalMarked": total,
	})
	if err != nil {
		return
	}
	s.hub.BroadcastToToken(token, sse.NewMessage("scan", data))
}
