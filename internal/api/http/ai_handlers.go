package httpapi

import (
	"net/http"

	"github.com/campus-hub/campus-hub/internal/infrastructure/prediction"
)

type predictRequest struct {
	StudentID string `json:"studentId"`
}

// predictAttendance proxies a forecast request to the external prediction
// service, feeding it the student's current overall percentage.
func (s *Server) predictAttendance(w http.ResponseWriter, r *http.Request) {
	if s.forecaster == nil {
		respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "prediction service is not configured")
		return
	}
	var req predictRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	u := authUserFromContext(r.Context())
	overview, err := s.attendanceSvc.StudentDashboard(r.Context(), u.UserID)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "INTERNAL_ERROR", err.Error())
		return
	}

	studentID := overview.Student.StudentID.String()
	if req.StudentID != "" {
		studentID = req.StudentID
	}
	res, err := s.forecaster.Predict(r.Context(), prediction.Request{
		StudentID:         studentID,
		CurrentAttendance: overview.OverallPercentage,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}
