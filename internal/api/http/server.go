package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAttendance "github.com/campus-hub/campus-hub/internal/application/attendance"
	appAuth "github.com/campus-hub/campus-hub/internal/application/auth"
	appEligibility "github.com/campus-hub/campus-hub/internal/application/eligibility"
	appNotification "github.com/campus-hub/campus-hub/internal/application/notification"
	appQRSession "github.com/campus-hub/campus-hub/internal/application/qrsession"
	appReport "github.com/campus-hub/campus-hub/internal/application/report"
	domainStudent "github.com/campus-hub/campus-hub/internal/domain/student"
	domainSubject "github.com/campus-hub/campus-hub/internal/domain/subject"
	domainTeacher "github.com/campus-hub/campus-hub/internal/domain/teacher"
	domainUser "github.com/campus-hub/campus-hub/internal/domain/user"
	"github.com/campus-hub/campus-hub/internal/infrastructure/prediction"
	"github.com/campus-hub/campus-hub/internal/infrastructure/ratelimit"
	"github.com/campus-hub/campus-hub/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authSvc         *appAuth.Service
	attendanceSvc   *appAttendance.Service
	qrSvc           *appQRSession.Service
	notificationSvc *appNotification.Service
	eligibilitySvc  *appEligibility.Service
	reportSvc       *appReport.Service
	forecaster      prediction.Forecaster

	userRepo    domainUser.Repository
	studentRepo domainStudent.Repository
	teacherRepo domainTeacher.Repository
	subjectRepo domainSubject.Repository

	sseHub      *sse.Hub
	authLimiter *ratelimit.Limiter
	scanLimiter *ratelimit.Limiter
	logger      zerolog.Logger
}

func NewServer(
	authSvc *appAuth.Service,
	attendanceSvc *appAttendance.Service,
	qrSvc *appQRSession.Service,
	notificationSvc *appNotification.Service,
	eligibilitySvc *appEligibility.Service,
	reportSvc *appReport.Service,
	forecaster prediction.Forecaster,
	userRepo domainUser.Repository,
	studentRepo domainStudent.Repository,
	teacherRepo domainTeacher.Repository,
	subjectRepo domainSubject.Repository,
	sseHub *sse.Hub,
	authLimiter *ratelimit.Limiter,
	scanLimiter *ratelimit.Limiter,
	logger zerolog.Logger,
) *Server {
	return &Server{
		authSvc:         authSvc,
		attendanceSvc:   attendanceSvc,
		qrSvc:           qrSvc,
		notificationSvc: notificationSvc,
		eligibilitySvc:  eligibilitySvc,
		reportSvc:       reportSvc,
		forecaster:      forecaster,
		userRepo:        userRepo,
		studentRepo:     studentRepo,
		teacherRepo:     teacherRepo,
		subjectRepo:     subjectRepo,
		sseHub:          sseHub,
		authLimiter:     authLimiter,
		scanLimiter:     scanLimiter,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", s.listNotifications)
				r.Get("/unread-count", s.unreadCount)
				r.Post("/{notificationId}/read", s.markNotificationRead)
			})

			r.Route("/student", func(r chi.Router) {
				r.Use(s.requireRole(string(domainUser.RoleStudent)))
				r.Get("/dashboard", s.studentDashboard)
				r.Get("/subjects/{subjectId}", s.studentSubjectDetail)
				r.Get("/monthly", s.studentMonthly)
				r.Get("/eligibility", s.studentEligibility)
				r.Get("/report/pdf", s.studentReportPDF)
				r.Get("/profile", s.studentProfile)
				r.Put("/profile", s.updateStudentProfile)
				r.Post("/scan", s.scanQR)
			})

			r.Route("/teacher", func(r chi.Router) {
				r.Use(s.requireRole(string(domainUser.RoleTeacher), string(domainUser.RoleAdmin)))
				r.Get("/dashboard", s.teacherDashboard)
				r.Get("/subjects/{subjectId}/roster", s.subjectRoster)
				r.Get("/subjects/{subjectId}/analytics", s.subjectAnalytics)
				r.Get("/subjects/{subjectId}/report/excel", s.subjectReportExcel)
				r.Post("/subjects/{subjectId}/attendance", s.markManual)
				r.Patch("/attendance/{recordId}", s.editAttendance)

				r.Route("/qr", func(r chi.Router) {
					r.Post("/", s.issueQR)
					r.Get("/{token}/status", s.qrStatus)
					r.Delete("/{token}", s.closeQR)
					r.Get("/{token}/stream", s.qrStream)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireRole(string(domainUser.RoleAdmin)))
				r.Get("/dashboard", s.adminDashboard)

				r.Route("/students", func(r chi.Router) {
					r.Get("/", s.listStudents)
					r.Get("/{studentId}", s.getStudent)
					r.Put("/{studentId}", s.updateStudent)
					r.Delete("/{studentId}", s.deleteStudent)
					r.Get("/{studentId}/eligibility", s.studentEligibilityByID)
				})

				r.Route("/teachers", func(r chi.Router) {
					r.Get("/", s.listTeachers)
					r.Get("/{teacherId}", s.getTeacher)
					r.Post("/{teacherId}/approve", s.approveTeacher)
					r.Delete("/{teacherId}", s.deleteTeacher)
				})

				r.Route("/subjects", func(r chi.Router) {
					r.Post("/", s.createSubject)
					r.Get("/", s.listSubjects)
					r.Get("/{subjectId}", s.getSubject)
					r.Put("/{subjectId}", s.updateSubject)
					r.Delete("/{subjectId}", s.deleteSubject)
				})

				r.Get("/audit/changes", s.listAttendanceChanges)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/predict", s.predictAttendance)
			})
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			offset = o
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func clientMeta(r *http.Request) (ip, device *string) {
	if addr := r.RemoteAddr; addr != "" {
		ip = &addr
	}
	if ua := r.UserAgent(); ua != "" {
		device = &ua
	}
	return ip, device
}
