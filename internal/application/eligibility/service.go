package eligibility

import (
	"context"
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domainAttendance "github.com/campus-hub/campus-hub/internal/domain/attendance"
	domainStudent "github.com/campus-hub/campus-hub/internal/domain/student"
	domainSubject "github.com/campus-hub/campus-hub/internal/domain/subject"
)

var ErrStudentNotFound = errors.New("student not found")

// Service evaluates exam-eligibility against a configurable rule expression.
// The rule sees `percentage`, `present`, `absent`, `leave` and `total`.
type Service struct {
	rule           string
	attendanceRepo domainAttendance.Repository
	studentRepo    domainStudent.Repository
	subjectRepo    domainSubject.Repository
	logger         zerolog.Logger
}

func NewService(rule string, attendanceRepo domainAttendance.Repository, studentRepo domainStudent.Repository, subjectRepo domainSubject.Repository, logger zerolog.Logger) *Service {
	return &Service{
		rule:           rule,
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		subjectRepo:    subjectRepo,
		logger:         logger.With().Str("service", "eligibility").Logger(),
	}
}

// SubjectEligibility is the verdict for one subject.
type SubjectEligibility struct {
	Subject    *domainSubject.Subject `json:"subject"`
	Stats      domainAttendance.Stats `json:"stats"`
	Percentage float64                `json:"percentage"`
	Eligible   bool                   `json:"eligible"`
}

// Result is the full eligibility report for a student.
type Result struct {
	Student  *domainStudent.Student `json:"student"`
	Rule     string                 `json:"rule"`
	Subjects []SubjectEligibility   `json:"subjects"`
	Overall  bool                   `json:"overall"`
}

// Check evaluates the rule per subject. A student is eligible overall when
// every subject with recorded lectures passes.
func (s *Service) Check(ctx context.Context, studentID uuid.UUID) (*Result, error) {
	st, err := s.studentRepo.GetByID(ctx, studentID)
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

	out := &Result{Student: st, Rule: s.rule, Overall: true}
	for _, sub := range subjects {
		stats, err := s.attendanceRepo.StatsByStudentSubject(ctx, st.StudentID, sub.SubjectID)
		if err != nil {
			return nil, err
		}
		eligible, err := Evaluate(s.rule, stats)
		if err != nil {
			return nil, err
		}
		out.Subjects = append(out.Subjects, SubjectEligibility{
			Subject:    sub,
			Stats:      stats,
			Percentage: stats.Percentage(),
			Eligible:   eligible,
		})
		if stats.Total > 0 && !eligible {
			out.Overall = false
		}
	}
	return out, nil
}

// Evaluate runs the rule expression against one subject's stats. An empty
// rule means everyone is eligible.
func Evaluate(rule string, stats domainAttendance.Stats) (bool, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return true, nil
	}
	expr, err := govaluate.NewEvaluableExpression(rule)
	if err != nil {
		return false, err
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"percentage": stats.Percentage(),
		"present":    stats.Present,
		"absent":     stats.Absent,
		"leave":      stats.Leave,
		"total":      stats.Total,
	})
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.New("eligibility rule did not evaluate to boolean")
	}
	return b, nil
}
