package qrsession

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestStore() *MemoryStore {
	// No janitor; expiry in these tests is exercised through the passive
	// check with a fake clock.
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func newTestSession(token string, validity time.Duration) *Session {
	return NewSession(token, "SUB001", "T1", "2025-01-10", time.Now(), validity)
}

func TestPutDuplicateToken(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Minute)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := st.Put(newTestSession("tok", time.Minute)); err != ErrDuplicateToken {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}
}

func TestGetUnknownToken(t *testing.T) {
	st := newTestStore()
	if _, err := st.Get("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetFiltersExpired(t *testing.T) {
	st := newTestStore()
	s := newTestSession("tok", time.Minute)
	if err := st.Put(s); err != nil {
		t.Fatalf("put: %v", err)
	}

	st.now = func() time.Time { return s.ExpiresAt.Add(-time.Second) }
	if _, err := st.Get("tok"); err != nil {
		t.Fatalf("expected live session just before expiry: %v", err)
	}

	st.now = func() time.Time { return s.ExpiresAt.Add(time.Second) }
	if _, err := st.Get("tok"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound past expiry, got %v", err)
	}
	// Entry still occupies memory until the sweep; reads must not see it.
	if st.Len() != 1 {
		t.Fatalf("expected entry to linger until sweep, len=%d", st.Len())
	}
}

func TestRemoveIdempotent(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}
	st.Remove("tok")
	st.Remove("tok")
	st.Remove("never-existed")
	if _, err := st.Get("tok"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestCloseMakesSessionUnreachable(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Hour)); err != nil {
		t.Fatalf("put: %v", err)
	}
	st.Close("tok")
	if _, err := st.Get("tok"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after close, got %v", err)
	}
	if got := st.RecordAttendee("tok", "S1"); got != RecordNotFound {
		t.Fatalf("expected RecordNotFound after close, got %v", got)
	}
}

func TestRecordAttendee(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	if got := st.RecordAttendee("tok", "S1"); got != RecordOK {
		t.Fatalf("first record: expected RecordOK, got %v", got)
	}
	if got := st.RecordAttendee("tok", "S1"); got != RecordAlreadyMarked {
		t.Fatalf("second record: expected RecordAlreadyMarked, got %v", got)
	}
	if got := st.RecordAttendee("missing", "S1"); got != RecordNotFound {
		t.Fatalf("unknown token: expected RecordNotFound, got %v", got)
	}

	s, err := st.Get("tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.AttendeeCount() != 1 {
		t.Fatalf("expected 1 attendee, got %d", s.AttendeeCount())
	}
}

func TestRecordAttendeeExpiredSession(t *testing.T) {
	st := newTestStore()
	s := newTestSession("tok", time.Minute)
	if err := st.Put(s); err != nil {
		t.Fatalf("put: %v", err)
	}
	st.now = func() time.Time { return s.ExpiresAt.Add(time.Second) }
	if got := st.RecordAttendee("tok", "S1"); got != RecordNotFound {
		t.Fatalf("expected RecordNotFound for expired session, got %v", got)
	}
}

func TestRecordAttendeeConcurrentSameStudent(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	const attempts = 64
	results := make(chan RecordResult, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- st.RecordAttendee("tok", "S1")
		}()
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for r := range results {
		switch r {
		case RecordOK:
			ok++
		case RecordAlreadyMarked:
			dup++
		default:
			t.Fatalf("unexpected result %v", r)
		}
	}
	if ok != 1 || dup != attempts-1 {
		t.Fatalf("expected exactly one RecordOK, got ok=%d dup=%d", ok, dup)
	}

	s, _ := st.Get("tok")
	if s.AttendeeCount() != 1 {
		t.Fatalf("expected attendee set size 1, got %d", s.AttendeeCount())
	}
}

func TestRecordAttendeeConcurrentDistinctStudents(t *testing.T) {
	st := newTestStore()
	if err := st.Put(newTestSession("tok", time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("S%03d", i)
			if got := st.RecordAttendee("tok", id); got != RecordOK {
				errs <- fmt.Errorf("student %s: got %v", id, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	s, _ := st.Get("tok")
	if s.AttendeeCount() != n {
		t.Fatalf("expected %d attendees, got %d", n, s.AttendeeCount())
	}
}

func TestSweepReclaimsExpired(t *testing.T) {
	st := newTestStore()
	live := newTestSession("live", time.Hour)
	dead := newTestSession("dead", time.Minute)
	if err := st.Put(live); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := st.Put(dead); err != nil {
		t.Fatalf("put: %v", err)
	}

	st.now = func() time.Time { return dead.ExpiresAt.Add(sweepGrace + time.Second) }
	st.sweep()

	if st.Len() != 1 {
		t.Fatalf("expected sweep to keep only the live session, len=%d", st.Len())
	}
	if _, err := st.Get("live"); err != nil {
		t.Fatalf("live session lost in sweep: %v", err)
	}
}
