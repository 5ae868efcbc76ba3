package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
	appQRSession "github.com/campus-hub/campus-hub/internal/application/qrsession"
	"github.com/campus-hub/campus-hub/internal/infrastructure/ratelimit"
)

func (s *Server) studentDashboard(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	overview, err := s.attendanceSvc.StudentDashboard(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) studentSubjectDetail(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	subjectID, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	records, err := s.attendanceSvc.SubjectDetail(r.Context(), u.UserID, subjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (s *Server) studentMonthly(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	records, err := s.attendanceSvc.MonthlySummary(r.Context(), u.UserID, year, month)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":    year,
		"month":   int(month),
		"records": records,
	})
}

func (s *Server) studentEligibility(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	st, err := s.studentRepo.GetByUserID(r.Context(), u.UserID)
	if err != nil || st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student profile not found")
		return
	}
	result, err := s.eligibilitySvc.Check(r.Context(), st.StudentID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) studentReportPDF(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	file, err := s.reportSvc.StudentPDF(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (s *Server) studentProfile(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	st, err := s.studentRepo.GetByUserID(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student profile not found")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

type updateProfileRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// updateStudentProfile lets a student change the fields they own. Enrollment
// data stays admin-only.
func (s *Server) updateStudentProfile(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	st, err := s.studentRepo.GetByUserID(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student profile not found")
		return
	}
	if req.Name != "" {
		st.Name = req.Name
	}
	st.Phone = req.Phone
	st.UpdatedAt = time.Now().UTC()
	if err := st.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.studentRepo.Update(r.Context(), st); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, st)
}

type scanRequest struct {
	Payload string `json:"payload"`
}

// scanQR validates a scanned barcode payload and, on a grant, persists the
// present record. Each rejection reason maps to its own status so the client
// can show a precise message.
func (s *Server) scanQR(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	if err := s.scanLimiter.Allow(r.Context(), "scan:"+u.UserID.String()); errors.Is(err, ratelimit.ErrRateLimited) {
		respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many scans, slow down")
		return
	}

	var req scanRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	st, err := s.studentRepo.GetByUserID(r.Context(), u.UserID)
	if err != nil || st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student profile not found")
		return
	}

	grant, rej := s.qrSvc.Validate(r.Context(), req.Payload, st.StudentID.String())
	if rej != nil {
		status, code := scanRejectionStatus(rej.Reason)
		respondError(w, status, code, rejectionMessage(rej.Reason))
		return
	}

	subjectID, err := uuid.Parse(grant.SubjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "corrupt session subject")
		return
	}
	teacherID, err := uuid.Parse(grant.TeacherID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "corrupt session teacher")
		return
	}

	ip, device := clientMeta(r)
	rec, err := s.attendanceSvc.RecordPresent(r.Context(), st.StudentID, subjectID, teacherID, grant.ClassDate, ip, device)
	if err != nil {
		if errors.Is(err, appAttendance.ErrDuplicate) {
			respondError(w, http.StatusConflict, "DUPLICATE_ATTENDANCE", "attendance already recorded for this class date")
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"record":  rec,
		"message": "attendance marked",
	})
}

func scanRejectionStatus(reason appQRSession.RejectReason) (int, string) {
	switch reason {
	case appQRSession.ReasonMalformedPayload:
		return http.StatusBadRequest, string(reason)
	case appQRSession.ReasonUnknownOrExpired:
		return http.StatusGone, string(reason)
	case appQRSession.ReasonPayloadTampering:
		return http.StatusForbidden, string(reason)
	case appQRSession.ReasonAlreadyScanned:
		return http.StatusConflict, string(reason)
	}
	return http.StatusBadRequest, string(reason)
}

func rejectionMessage(reason appQRSession.RejectReason) string {
	switch reason {
	case appQRSession.ReasonMalformedPayload:
		return "the scanned code could not be read"
	case appQRSession.ReasonUnknownOrExpired:
		return "this code is no longer valid"
	case appQRSession.ReasonPayloadTampering:
		return "the scanned code does not match an active class session"
	case appQRSession.ReasonAlreadyScanned:
		return "you have already scanned for this class"
	}
	return "scan rejected"
}
