package qrsession

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// tokenBytes gives 256 bits of entropy, hex encoded to 64 characters.
const tokenBytes = 32

var ErrMalformedPayload = fmt.Errorf("malformed scan payload")

// ScannedPayload is the decoded content of a scanned barcode. Every field is
// an untrusted copy asserted by the payload itself and must be cross-checked
// against the authoritative Session before use.
type ScannedPayload struct {
	Token     string    `json:"token"`
	SubjectID string    `json:"subjectId"`
	TeacherID string    `json:"teacherId"`
	ClassDate string    `json:"classDate"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GenerateToken produces an unguessable session token from a
// cryptographically secure random source.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// EncodePayload serializes the session into the compact text form rendered
// into a barcode. The output round-trips exactly through DecodePayload.
func EncodePayload(s *Session) (string, error) {
	p := ScannedPayload{
		Token:     s.Token,
		SubjectID: s.SubjectID,
		TeacherID: s.TeacherID,
		ClassDate: s.ClassDate,
		ExpiresAt: s.ExpiresAt,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(data), nil
}

// DecodePayload parses the raw scanned text. Any structural problem is
// reported as ErrMalformedPayload; this function never panics past the
// boundary.
func DecodePayload(raw string) (*ScannedPayload, error) {
	var p ScannedPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.Token == "" || p.SubjectID == "" || p.TeacherID == "" || p.ClassDate == "" {
		return nil, fmt.Errorf("%w: missing required field", ErrMalformedPayload)
	}
	return &p, nil
}
