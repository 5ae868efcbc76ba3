package qrsession

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/campus-hub/campus-hub/internal/domain/qrsession"
)

func newTestService(t *testing.T) (*Service, *domain.MemoryStore) {
	t.Helper()
	store := domain.NewMemoryStore(0)
	t.Cleanup(store.Stop)
	svc := NewService(store, nil, zerolog.Nop())
	return svc, store
}

func TestIssueValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "", "T1", "2025-01-10", 5*time.Minute)
	require.Error(t, err)

	_, err = svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 0)
	require.Error(t, err)

	_, err = svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 2*time.Hour)
	require.Error(t, err)

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)
	assert.Len(t, res.Token, 64)
	assert.NotEmpty(t, res.EncodedPayload)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), res.ExpiresAt, 2*time.Second)
}

func TestIssueTokensAreUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
		require.NoError(t, err)
		_, dup := seen[res.Token]
		require.False(t, dup, "token reused")
		seen[res.Token] = struct{}{}
	}
}

func TestScanLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)

	grant, rej := svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, rej)
	assert.Equal(t, &Grant{SubjectID: "SUB001", TeacherID: "T1", ClassDate: "2025-01-10"}, grant)

	// Same student scanning again is refused.
	grant, rej = svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, grant)
	assert.Equal(t, ReasonAlreadyScanned, rej.Reason)

	// A different student gets a fresh grant.
	grant, rej = svc.Validate(ctx, res.EncodedPayload, "S2")
	require.Nil(t, rej)
	assert.Equal(t, "SUB001", grant.SubjectID)

	status, err := svc.Status(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalMarked)
	assert.ElementsMatch(t, []string{"S1", "S2"}, status.StudentIDs)
}

func TestValidateMalformedPayload(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, raw := range []string{"", "garbage", "{}", `{"token":"x"}`} {
		grant, rej := svc.Validate(ctx, raw, "S1")
		require.Nil(t, grant)
		assert.Equal(t, ReasonMalformedPayload, rej.Reason)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	payload, err := json.Marshal(map[string]interface{}{
		"token":     "deadbeef",
		"subjectId": "SUB001",
		"teacherId": "T1",
		"classDate": "2025-01-10",
		"expiresAt": time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	grant, rej := svc.Validate(ctx, string(payload), "S1")
	require.Nil(t, grant)
	assert.Equal(t, ReasonUnknownOrExpired, rej.Reason)
}

func TestValidateExpiredSession(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", time.Minute)
	require.NoError(t, err)

	// Simulated clock past expiry; the store filters and the service
	// rechecks, reporting the same reason as an unknown token.
	later := func() time.Time { return res.ExpiresAt.Add(time.Second) }
	store.SetClock(later)
	svc.now = later

	grant, rej := svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, grant)
	assert.Equal(t, ReasonUnknownOrExpired, rej.Reason)
}

func TestValidateJustBeforeExpiry(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", time.Minute)
	require.NoError(t, err)

	almost := func() time.Time { return res.ExpiresAt.Add(-time.Second) }
	store.SetClock(almost)
	svc.now = almost

	grant, rej := svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, rej)
	require.NotNil(t, grant)
}

func TestValidateTamperedPayload(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.EncodedPayload), &fields))
	fields["subjectId"] = "SUB999"
	forged, err := json.Marshal(fields)
	require.NoError(t, err)

	grant, rej := svc.Validate(ctx, string(forged), "S1")
	require.Nil(t, grant)
	assert.Equal(t, ReasonPayloadTampering, rej.Reason)

	// The genuine payload still works: tampering attempts must not consume
	// anything.
	grant, rej = svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, rej)
	require.NotNil(t, grant)
}

func TestConcurrentScansSameStudent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)

	const attempts = 32
	grants := make(chan *Grant, attempts)
	rejects := make(chan *Rejection, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, r := svc.Validate(ctx, res.EncodedPayload, "S1")
			if g != nil {
				grants <- g
			}
			if r != nil {
				rejects <- r
			}
		}()
	}
	wg.Wait()
	close(grants)
	close(rejects)

	assert.Len(t, grants, 1)
	assert.Len(t, rejects, attempts-1)
	for r := range rejects {
		assert.Equal(t, ReasonAlreadyScanned, r.Reason)
	}
}

func TestCloseEndsSessionEarly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)

	svc.Close(ctx, res.Token)

	grant, rej := svc.Validate(ctx, res.EncodedPayload, "S1")
	require.Nil(t, grant)
	assert.Equal(t, ReasonUnknownOrExpired, rej.Reason)

	_, err = svc.Status(ctx, res.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusDistinguishesEmptyFromMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Issue(ctx, "SUB001", "T1", "2025-01-10", 5*time.Minute)
	require.NoError(t, err)

	status, err := svc.Status(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalMarked)
	assert.Empty(t, status.StudentIDs)

	_, err = svc.Status(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}
