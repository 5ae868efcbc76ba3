package qrsession

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateTokenShape(t *testing.T) {
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if len(tok) != tokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", tokenBytes*2, len(tok))
	}
	if strings.ToLower(tok) != tok {
		t.Fatalf("expected lowercase hex, got %q", tok)
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := GenerateToken()
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		if _, ok := seen[tok]; ok {
			t.Fatalf("token %q repeated", tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	s := NewSession(tok, "SUB001", "T1", "2025-01-10", now, 5*time.Minute)

	raw, err := EncodePayload(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, err := DecodePayload(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Token != s.Token || p.SubjectID != s.SubjectID || p.TeacherID != s.TeacherID || p.ClassDate != s.ClassDate {
		t.Fatalf("round trip mismatch: %+v vs %+v", p, s)
	}
	if !p.ExpiresAt.Equal(s.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v vs %v", p.ExpiresAt, s.ExpiresAt)
	}
}

func TestDecodePayloadMalformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"{}",
		`{"token":"abc"}`,
		`{"token":"abc","subjectId":"s","teacherId":"t"}`,
		`[1,2,3]`,
	}
	for _, raw := range cases {
		if _, err := DecodePayload(raw); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("expected ErrMalformedPayload for %q, got %v", raw, err)
		}
	}
}
