package qrsession

import (
	"sync"
	"time"
)

// sweepGrace bounds how long an expired entry may linger before the janitor
// reclaims it. Reads never see it either way.
const sweepGrace = 5 * time.Second

// MemoryStore is the process-local Store implementation. A single mutex
// guards the whole map; scan volume is classroom-scale, so the simpler
// locking wins over per-session sharding.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewMemoryStore creates a store and starts its janitor goroutine. Callers
// must Stop it when done.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	st := &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepInterval > 0 {
		go st.janitor(sweepInterval)
	}
	return st
}

// Stop terminates the janitor.
func (st *MemoryStore) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *MemoryStore) Put(s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.Token]; ok {
		return ErrDuplicateToken
	}
	st.sessions[s.Token] = s
	return nil
}

func (st *MemoryStore) Get(token string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok || s.IsExpired(st.now()) {
		return nil, ErrNotFound
	}
	// Copy so callers never observe concurrent attendee mutations.
	return s.snapshot(), nil
}

func (st *MemoryStore) Remove(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

func (st *MemoryStore) Close(token string) {
	st.Remove(token)
}

func (st *MemoryStore) RecordAttendee(token, studentID string) RecordResult {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok || s.IsExpired(st.now()) {
		return RecordNotFound
	}
	if s.hasAttendee(studentID) {
		return RecordAlreadyMarked
	}
	s.addAttendee(studentID)
	return RecordOK
}

// SetClock overrides the store's time source. Test hook.
func (st *MemoryStore) SetClock(now func() time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.now = now
}

// Len reports the number of stored entries, expired or not. Test hook.
func (st *MemoryStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			st.sweep()
		}
	}
}

func (st *MemoryStore) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-sweepGrace)
	for token, s := range st.sessions {
		if cutoff.After(s.ExpiresAt) {
			delete(st.sessions, token)
		}
	}
}
