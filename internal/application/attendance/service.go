package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appNotification "github.com/campus-hub/campus-hub/internal/application/notification"
	domainAttendance "github.com/campus-hub/campus-hub/internal/domain/attendance"
	domainNotification "github.com/campus-hub/campus-hub/internal/domain/notification"
	domainStudent "github.com/campus-hub/campus-hub/internal/domain/student"
	domainSubject "github.com/campus-hub/campus-hub/internal/domain/subject"
	domainTeacher "github.com/campus-hub/campus-hub/internal/domain/teacher"
)

var (
	ErrNotSubjectTeacher = errors.New("not authorized to mark attendance for this subject")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrStudentNotFound   = errors.New("student profile not found")
	ErrTeacherNotFound   = errors.New("teacher profile not found")
)

// ErrDuplicate mirrors the repository sentinel so handlers need only this
// package.
var ErrDuplicate = domainAttendance.ErrDuplicate

// Service covers marking, auditing and aggregating attendance.
type Service struct {
	attendanceRepo domainAttendance.Repository
	subjectRepo    domainSubject.Repository
	studentRepo    domainStudent.Repository
	teacherRepo    domainTeacher.Repository
	notifier       *appNotification.Service
	logger         zerolog.Logger
}

func NewService(
	attendanceRepo domainAttendance.Repository,
	subjectRepo domainSubject.Repository,
	studentRepo domainStudent.Repository,
	teacherRepo domainTeacher.Repository,
	notifier *appNotification.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		subjectRepo:    subjectRepo,
		studentRepo:    studentRepo,
		teacherRepo:    teacherRepo,
		notifier:       notifier,
		logger:         logger.With().Str("service", "attendance").Logger(),
	}
}

// MarkEntry is one student's status in a manual bulk mark.
type MarkEntry struct {
	StudentID uuid.UUID               `json:"studentId"`
	Status    domainAttendance.Status `json:"status"`
}

// MarkError reports a single failed entry inside an otherwise successful
// bulk mark.
type MarkError struct {
	StudentID uuid.UUID `json:"studentId"`
	Message   string    `json:"message"`
}

// MarkResult is the outcome of a manual bulk mark.
type MarkResult struct {
	Marked []*domainAttendance.Record `json:"marked"`
	Errors []MarkError                `json:"errors,omitempty"`
}

// MarkManual records attendance for a set of students. Per-student failures
// (usually duplicates) are collected, not fatal to the batch. Absent students
// get a notification.
func (s *Service) MarkManual(ctx context.Context, teacherUserID, subjectID uuid.UUID, classDate string, entries []MarkEntry, ip, device *string) (*MarkResult, error) {
	if err := domainAttendance.ValidateClassDate(classDate); err != nil {
		return nil, err
	}
	teacher, subject, err := s.authorizeSubject(ctx, teacherUserID, subjectID)
	if err != nil {
		return nil, err
	}

	res := &MarkResult{}
	for _, e := range entries {
		if err := domainAttendance.ValidateStatus(e.Status); err != nil {
			res.Errors = append(res.Errors, MarkError{StudentID: e.StudentID, Message: err.Error()})
			continue
		}
		rec := &domainAttendance.Record{
			RecordID:   uuid.New(),
			StudentID:  e.StudentID,
			SubjectID:  subjectID,
			ClassDate:  classDate,
			Status:     e.Status,
			MarkedBy:   teacher.TeacherID,
			MarkedAt:   time.Now().UTC(),
			Method:     domainAttendance.MethodManual,
			IPAddress:  ip,
			DeviceInfo: device,
		}
		if err := s.attendanceRepo.Create(ctx, rec); err != nil {
			msg := "failed to record attendance"
			if errors.Is(err, domainAttendance.ErrDuplicate) {
				msg = "attendance already marked for this date"
			}
			res.Errors = append(res.Errors, MarkError{StudentID: e.StudentID, Message: msg})
			continue
		}
		res.Marked = append(res.Marked, rec)

		if e.Status == domainAttendance.StatusAbsent {
			s.notifyStudent(ctx, e.StudentID, subject,
				fmt.Sprintf("You were marked absent in %s on %s", subject.Name, classDate),
				domainNotification.PriorityMedium)
		}
	}

	if len(res.Marked) > 0 {
		if err := s.subjectRepo.IncrementTotalLectures(ctx, subjectID); err != nil {
			s.logger.Error().Err(err).Str("subject_id", subjectID.String()).Msg("increment total lectures")
		}
	}
	s.logger.Info().
		Str("subject_id", subjectID.String()).
		Int("marked", len(res.Marked)).
		Int("errors", len(res.Errors)).
		Msg("manual attendance marked")
	return res, nil
}

// RecordPresent persists a "present" record produced by a consumed QR grant.
// The (student, subject, date) uniqueness check is a second duplicate defense
// beyond the session's attendee set; session bookkeeping and persisted rows
// can diverge across a restart.
func (s *Service) RecordPresent(ctx context.Context, studentID, subjectID, markedBy uuid.UUID, classDate string, ip, device *string) (*domainAttendance.Record, error) {
	exists, err := s.attendanceRepo.Exists(ctx, studentID, subjectID, classDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainAttendance.ErrDuplicate
	}
	rec := &domainAttendance.Record{
		RecordID:   uuid.New(),
		StudentID:  studentID,
		SubjectID:  subjectID,
		ClassDate:  classDate,
		Status:     domainAttendance.StatusPresent,
		MarkedBy:   markedBy,
		MarkedAt:   time.Now().UTC(),
		Method:     domainAttendance.MethodQR,
		IPAddress:  ip,
		DeviceInfo: device,
	}
	if err := s.attendanceRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if subject, serr := s.subjectRepo.GetByID(ctx, subjectID); serr == nil && subject != nil {
			s.notifyStudent(ctx, studentID, subject,
				fmt.Sprintf("Your attendance has been marked for %s", subject.Name),
				domainNotification.PriorityLow)
		}
	}
	return rec, nil
}

// Edit changes a record's status, appending the audited change entry.
func (s *Service) Edit(ctx context.Context, editorUserID, recordID uuid.UUID, newStatus domainAttendance.Status, reason string) (*domainAttendance.Record, error) {
	if err := domainAttendance.ValidateStatus(newStatus); err != nil {
		return nil, err
	}
	rec, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}

	ch := &domainAttendance.Change{
		RecordID:       rec.RecordID,
		ChangedBy:      editorUserID,
		PreviousStatus: rec.Status,
		NewStatus:      newStatus,
		Reason:         reason,
		ChangedAt:      time.Now().UTC(),
	}
	if err := s.attendanceRepo.UpdateStatus(ctx, rec.RecordID, newStatus); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.RecordChange(ctx, ch); err != nil {
		s.logger.Error().Err(err).Str("record_id", rec.RecordID.String()).Msg("record change log")
	}
	rec.Status = newStatus
	return rec, nil
}

// ListChanges exposes the attendance edit audit trail.
func (s *Service) ListChanges(ctx context.Context, limit, offset int) ([]*domainAttendance.Change, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.attendanceRepo.ListChanges(ctx, limit, offset)
}

// SubjectStat is one student's aggregate inside a subject.
type SubjectStat struct {
	Student    *domainStudent.Student `json:"student"`
	Stats      domainAttendance.Stats `json:"stats"`
	Percentage float64                `json:"percentage"`
}

// Analytics is the per-subject class view for a teacher.
type Analytics struct {
	Subject      *domainSubject.Subject        `json:"subject"`
	StudentStats []SubjectStat                 `json:"studentStats"`
	Defaulters   []SubjectStat                 `json:"defaulters"`
	Trend        []domainAttendance.TrendPoint `json:"trend"`
}

const defaulterThreshold = 75.0

// SubjectAnalytics aggregates per-student stats, defaulters below the
// threshold and the 30-day trend.
func (s *Service) SubjectAnalytics(ctx context.Context, teacherUserID, subjectID uuid.UUID) (*Analytics, error) {
	_, subject, err := s.authorizeSubject(ctx, teacherUserID, subjectID)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.ListByDepartmentSemester(ctx, subject.Department, subject.Semester)
	if err != nil {
		return nil, err
	}

	out := &Analytics{Subject: subject}
	for _, st := range students {
		stats, err := s.attendanceRepo.StatsByStudentSubject(ctx, st.StudentID, subjectID)
		if err != nil {
			return nil, err
		}
		stat := SubjectStat{Student: st, Stats: stats, Percentage: stats.Percentage()}
		out.StudentStats = append(out.StudentStats, stat)
		if stats.Total > 0 && stat.Percentage < defaulterThreshold {
			out.Defaulters = append(out.Defaulters, stat)
		}
	}

	trend, err := s.attendanceRepo.TrendBySubject(ctx, subjectID, time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	out.Trend = trend
	return out, nil
}

// Roster lists the students implicitly enrolled in a subject.
func (s *Service) Roster(ctx context.Context, teacherUserID, subjectID uuid.UUID) ([]*domainStudent.Student, error) {
	_, subject, err := s.authorizeSubject(ctx, teacherUserID, subjectID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.ListByDepartmentSemester(ctx, subject.Department, subject.Semester)
}

// StudentSubjectSummary is a student's standing in one subject.
type StudentSubjectSummary struct {
	Subject    *domainSubject.Subject `json:"subject"`
	Stats      domainAttendance.Stats `json:"stats"`
	Percentage float64                `json:"percentage"`
}

// StudentOverview is the student dashboard aggregate.
type StudentOverview struct {
	Student           *domainStudent.Student  `json:"student"`
	Subjects          []StudentSubjectSummary `json:"subjects"`
	OverallPercentage float64                 `json:"overallPercentage"`
}

// StudentDashboard aggregates a student's standing across their subjects.
func (s *Service) StudentDashboard(ctx context.Context, studentUserID uuid.UUID) (*StudentOverview, error) {
	st, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	subjects, err := s.subjectRepo.ListByDepartmentSemester(ctx, st.Department, st.Semester)
	if err != nil {
		return nil, err
	}

	out := &StudentOverview{Student: st}
	var total domainAttendance.Stats
	for _, sub := range subjects {
		stats, err := s.attendanceRepo.StatsByStudentSubject(ctx, st.StudentID, sub.SubjectID)
		if err != nil {
			return nil, err
		}
		out.Subjects = append(out.Subjects, StudentSubjectSummary{
			Subject:    sub,
			Stats:      stats,
			Percentage: stats.Percentage(),
		})
		total.Present += stats.Present
		total.Absent += stats.Absent
		total.Leave += stats.Leave
		total.Total += stats.Total
	}
	out.OverallPercentage = total.Percentage()
	return out, nil
}

// SubjectDetail lists a student's raw records in one subject.
func (s *Service) SubjectDetail(ctx context.Context, studentUserID, subjectID uuid.UUID) ([]*domainAttendance.Record, error) {
	st, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	return s.attendanceRepo.ListByStudentSubject(ctx, st.StudentID, subjectID)
}

// MonthlySummary lists a student's records inside one calendar month.
func (s *Service) MonthlySummary(ctx context.Context, studentUserID uuid.UUID, year int, month time.Month) ([]*domainAttendance.Record, error) {
	st, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrStudentNotFound
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.attendanceRepo.ListByStudentRange(ctx, st.StudentID, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

// TeacherOverview is the teacher dashboard aggregate.
type TeacherOverview struct {
	Teacher          *domainTeacher.Teacher     `json:"teacher"`
	Subjects         []*domainSubject.Subject   `json:"subjects"`
	ClassesConducted int                        `json:"classesConducted"`
	RecentMarks      []*domainAttendance.Record `json:"recentMarks"`
}

// TeacherDashboard aggregates a teacher's subjects and recent activity.
func (s *Service) TeacherDashboard(ctx context.Context, teacherUserID uuid.UUID) (*TeacherOverview, error) {
	t, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTeacherNotFound
	}
	subjects, err := s.subjectRepo.ListByTeacher(ctx, t.TeacherID)
	if err != nil {
		return nil, err
	}
	recent, err := s.attendanceRepo.ListRecentByMarker(ctx, t.TeacherID, 20)
	if err != nil {
		return nil, err
	}
	conducted, err := s.attendanceRepo.CountDistinctDatesByMarker(ctx, t.TeacherID)
	if err != nil {
		return nil, err
	}
	return &TeacherOverview{
		Teacher:          t,
		Subjects:         subjects,
		ClassesConducted: conducted,
		RecentMarks:      recent,
	}, nil
}

// authorizeSubject resolves the teacher profile for a user and checks the
// subject is assigned to them.
func (s *Service) authorizeSubject(ctx context.Context, teacherUserID, subjectID uuid.UUID) (*domainTeacher.Teacher, *domainSubject.Subject, error) {
	t, err := s.teacherRepo.GetByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, ErrTeacherNotFound
	}
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, nil, err
	}
	if subject == nil {
		return nil, nil, ErrSubjectNotFound
	}
	if !subject.TaughtBy(t.TeacherID) {
		return nil, nil, ErrNotSubjectTeacher
	}
	return t, subject, nil
}

func (s *Service) notifyStudent(ctx context.Context, studentID uuid.UUID, subject *domainSubject.Subject, message string, priority domainNotification.Priority) {
	if s.notifier == nil {
		return
	}
	st, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil || st == nil {
		return
	}
	s.notifier.NotifyWithEmail(ctx, st.UserID, st.Name, st.Email,
		domainNotification.TypeAttendanceMarked, "Attendance Marked", message, priority)
}
