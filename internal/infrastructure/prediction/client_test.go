package prediction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "S1", req.StudentID)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"studentId":           req.StudentID,
			"predictedAttendance": 72.5,
			"confidence":          0.9,
			"riskLevel":           "High",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.Predict(context.Background(), Request{StudentID: "S1", CurrentAttendance: 74})
	require.NoError(t, err)
	assert.Equal(t, 72.5, resp.PredictedAttendance)
	assert.Equal(t, "High", resp.RiskLevel)
	assert.NotEmpty(t, resp.Raw)
}

func TestPredictUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Predict(context.Background(), Request{StudentID: "S1"})
	require.Error(t, err)
}
