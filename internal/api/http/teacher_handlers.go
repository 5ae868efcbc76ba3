package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
	appQRSession "github.com/campus-hub/campus-hub/internal/application/qrsession"
	domainAttendance "github.com/campus-hub/campus-hub/internal/domain/attendance"
	"github.com/campus-hub/campus-hub/internal/infrastructure/qr"
	"github.com/campus-hub/campus-hub/internal/infrastructure/sse"
)

func (s *Server) teacherDashboard(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	overview, err := s.attendanceSvc.TeacherDashboard(r.Context(), u.UserID)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "DASHBOARD_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) subjectRoster(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	subjectID, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	students, err := s.attendanceSvc.Roster(r.Context(), u.UserID, subjectID)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "ROSTER_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"students": students})
}

func (s *Server) subjectAnalytics(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	subjectID, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	analytics, err := s.attendanceSvc.SubjectAnalytics(r.Context(), u.UserID, subjectID)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "ANALYTICS_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

func (s *Server) subjectReportExcel(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	subjectID, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	file, err := s.reportSvc.SubjectExcel(r.Context(), u.UserID, subjectID)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "REPORT_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

type markManualRequest struct {
	ClassDate string                    `json:"classDate"`
	Entries   []appAttendance.MarkEntry `json:"entries"`
}

func (s *Server) markManual(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	subjectID, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	var req markManualRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if len(req.Entries) == 0 {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "entries are required")
		return
	}
	ip, device := clientMeta(r)
	res, err := s.attendanceSvc.MarkManual(r.Context(), u.UserID, subjectID, req.ClassDate, req.Entries, ip, device)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "MARK_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type editAttendanceRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (s *Server) editAttendance(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	recordID, err := parseUUIDParam(r, "recordId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid record id")
		return
	}
	var req editAttendanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	rec, err := s.attendanceSvc.Edit(r.Context(), u.UserID, recordID, domainAttendance.Status(req.Status), req.Reason)
	if err != nil {
		respondError(w, attendanceErrStatus(err), "EDIT_FAILED", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

type issueQRRequest struct {
	SubjectID       string `json:"subjectId"`
	ClassDate       string `json:"classDate"`
	ValiditySeconds int    `json:"validitySeconds"`
}

// issueQR opens a live session and returns both the raw payload and a PNG
// data URL ready for an <img> tag.
func (s *Server) issueQR(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	var req issueQRRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	teacher, err := s.teacherRepo.GetByUserID(r.Context(), u.UserID)
	if err != nil || teacher == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "teacher profile not found")
		return
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	subject, err := s.subjectRepo.GetByID(r.Context(), subjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if subject == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "subject not found")
		return
	}
	if !subject.TaughtBy(teacher.TeacherID) {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "subject is not assigned to you")
		return
	}
	if err := domainAttendance.ValidateClassDate(req.ClassDate); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	validity := time.Duration(req.ValiditySeconds) * time.Second
	if req.ValiditySeconds == 0 {
		validity = 5 * time.Minute
	}
	res, err := s.qrSvc.Issue(r.Context(), subject.SubjectID.String(), teacher.TeacherID.String(), req.ClassDate, validity)
	if err != nil {
		respondError(w, http.StatusBadRequest, "ISSUE_FAILED", err.Error())
		return
	}

	image, err := qr.RenderDataURL(res.EncodedPayload)
	if err != nil {
		s.qrSvc.Close(r.Context(), res.Token)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render code")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token":     res.Token,
		"payload":   res.EncodedPayload,
		"image":     image,
		"expiresAt": res.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) qrStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	status, err := s.qrSvc.Status(r.Context(), token)
	if err != nil {
		if errors.Is(err, appQRSession.ErrNotFound) {
			respondError(w, http.StatusGone, "UNKNOWN_OR_EXPIRED_SESSION", "session not found or expired")
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) closeQR(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	s.qrSvc.Close(r.Context(), token)
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "CLOSED"})
}

// qrStream pushes live scan events for one session over SSE.
func (s *Server) qrStream(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if _, err := s.qrSvc.Status(r.Context(), token); err != nil {
		respondError(w, http.StatusGone, "UNKNOWN_OR_EXPIRED_SESSION", "session not found or expired")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming not supported")
		return
	}

	client := sse.NewClient(token)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(client.ClientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Send an initial comment to flush headers and keep the connection alive.
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			_, _ = w.Write([]byte("event: " + msg.Event + "\n"))
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg.Data)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func attendanceErrStatus(err error) int {
	switch {
	case errors.Is(err, appAttendance.ErrNotSubjectTeacher):
		return http.StatusForbidden
	case errors.Is(err, appAttendance.ErrSubjectNotFound),
		errors.Is(err, appAttendance.ErrRecordNotFound),
		errors.Is(err, appAttendance.ErrStudentNotFound),
		errors.Is(err, appAttendance.ErrTeacherNotFound):
		return http.StatusNotFound
	case errors.Is(err, appAttendance.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
