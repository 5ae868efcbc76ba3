package subject

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subject is a course offering taught in a given department and semester.
// Students are enrolled implicitly by (department, semester).
type Subject struct {
	ID              int64      `json:"id"`
	SubjectID       uuid.UUID  `json:"subjectId"`
	Name            string     `json:"name"`
	Code            string     `json:"code"`
	Department      string     `json:"department"`
	Semester        int        `json:"semester"`
	AssignedTeacher *uuid.UUID `json:"assignedTeacher,omitempty"`
	Credits         int        `json:"credits"`
	TotalLectures   int        `json:"totalLectures"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("subject name is required")
	}
	if s.Code == "" {
		return errors.New("subject code is required")
	}
	if s.Semester < 1 || s.Semester > 8 {
		return errors.New("semester must be between 1 and 8")
	}
	return nil
}

// TaughtBy reports whether the subject is assigned to the given teacher.
func (s *Subject) TaughtBy(teacherID uuid.UUID) bool {
	return s.AssignedTeacher != nil && *s.AssignedTeacher == teacherID
}
