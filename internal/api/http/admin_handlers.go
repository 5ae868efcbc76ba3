package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	domainNotification "github.com/campus-hub/campus-hub/internal/domain/notification"
	domainSubject "github.com/campus-hub/campus-hub/internal/domain/subject"
	domainUser "github.com/campus-hub/campus-hub/internal/domain/user"
)

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	students, err := s.studentRepo.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	teachers, err := s.teacherRepo.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	subjects, err := s.subjectRepo.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	teacherAccounts, err := s.userRepo.CountByRole(r.Context(), domainUser.RoleTeacher)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"students":        students,
		"teachers":        teachers,
		"subjects":        subjects,
		"teacherAccounts": teacherAccounts,
	})
}

// Students

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	students, err := s.studentRepo.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"students": students})
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid student id")
		return
	}
	st, err := s.studentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student not found")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

type updateStudentRequest struct {
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	Semester       int     `json:"semester"`
	EnrollmentYear int     `json:"enrollmentYear"`
	Phone          *string `json:"phone,omitempty"`
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid student id")
		return
	}
	var req updateStudentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	st, err := s.studentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student not found")
		return
	}
	st.Name = req.Name
	st.Department = req.Department
	st.Semester = req.Semester
	st.EnrollmentYear = req.EnrollmentYear
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

func (s *Server) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid student id")
		return
	}
	st, err := s.studentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if st == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "student not found")
		return
	}
	// Deleting the login cascades to the profile and its records.
	if err := s.userRepo.Delete(r.Context(), st.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "DELETED"})
}

func (s *Server) studentEligibilityByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid student id")
		return
	}
	result, err := s.eligibilitySvc.Check(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Teachers

func (s *Server) listTeachers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	teachers, err := s.teacherRepo.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"teachers": teachers})
}

func (s *Server) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "teacherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid teacher id")
		return
	}
	t, err := s.teacherRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "teacher not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// approveTeacher activates a pending teacher account and tells them so.
func (s *Server) approveTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "teacherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid teacher id")
		return
	}
	t, err := s.teacherRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "teacher not found")
		return
	}
	if err := s.userRepo.UpdateStatus(r.Context(), t.UserID, domainUser.StatusActive); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	s.notificationSvc.Notify(r.Context(), t.UserID, domainNotification.TypeTeacherApproved,
		"Account approved", "Your teacher account has been approved. You can now sign in.",
		domainNotification.PriorityHigh)
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "APPROVED"})
}

func (s *Server) deleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "teacherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid teacher id")
		return
	}
	t, err := s.teacherRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "teacher not found")
		return
	}
	if err := s.userRepo.Delete(r.Context(), t.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "DELETED"})
}

// Subjects

type subjectRequest struct {
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	Department      string  `json:"department"`
	Semester        int     `json:"semester"`
	AssignedTeacher *string `json:"assignedTeacher,omitempty"`
	Credits         int     `json:"credits"`
}

func (s *Server) createSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	now := time.Now().UTC()
	sub := &domainSubject.Subject{
		SubjectID:  uuid.New(),
		Name:       req.Name,
		Code:       domainSubject.NormalizeCode(req.Code),
		Department: req.Department,
		Semester:   req.Semester,
		Credits:    req.Credits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.AssignedTeacher != nil {
		tid, err := uuid.Parse(*req.AssignedTeacher)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid assigned teacher id")
			return
		}
		sub.AssignedTeacher = &tid
	}
	if err := sub.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if existing, err := s.subjectRepo.GetByCode(r.Context(), sub.Code); err == nil && existing != nil {
		respondError(w, http.StatusConflict, "CODE_TAKEN", "subject code already exists")
		return
	}
	if err := s.subjectRepo.Create(r.Context(), sub); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	subjects, err := s.subjectRepo.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

func (s *Server) getSubject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	sub, err := s.subjectRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "subject not found")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (s *Server) updateSubject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	var req subjectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	sub, err := s.subjectRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "subject not found")
		return
	}
	sub.Name = req.Name
	sub.Code = domainSubject.NormalizeCode(req.Code)
	sub.Department = req.Department
	sub.Semester = req.Semester
	sub.Credits = req.Credits
	sub.AssignedTeacher = nil
	if req.AssignedTeacher != nil {
		tid, err := uuid.Parse(*req.AssignedTeacher)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid assigned teacher id")
			return
		}
		sub.AssignedTeacher = &tid
	}
	sub.UpdatedAt = time.Now().UTC()
	if err := sub.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.subjectRepo.Update(r.Context(), sub); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (s *Server) deleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "subjectId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid subject id")
		return
	}
	if err := s.subjectRepo.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "DELETED"})
}

// Audit

func (s *Server) listAttendanceChanges(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 200)
	changes, err := s.attendanceSvc.ListChanges(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"changes": changes})
}
