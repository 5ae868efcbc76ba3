package student

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Student is the role-specific profile for a student account.
type Student struct {
	ID             int64     `json:"id"`
	StudentID      uuid.UUID `json:"studentId"`
	UserID         uuid.UUID `json:"userId"`
	Name           string    `json:"name"`
	RollNumber     string    `json:"rollNumber"`
	Email          string    `json:"email"`
	Department     string    `json:"department"`
	Semester       int       `json:"semester"`
	EnrollmentYear int       `json:"enrollmentYear"`
	Phone          *string   `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

var departments = map[string]struct{}{
	"Computer Science":       {},
	"Electronics":            {},
	"Mechanical":             {},
	"Civil":                  {},
	"Information Technology": {},
	"Electrical":             {},
}

func ValidateDepartment(dept string) error {
	if _, ok := departments[dept]; !ok {
		return errors.New("invalid department")
	}
	return nil
}

func ValidateSemester(sem int) error {
	if sem < 1 || sem > 8 {
		return errors.New("semester must be between 1 and 8")
	}
	return nil
}

func NormalizeRollNumber(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}

func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if s.RollNumber == "" {
		return errors.New("roll number is required")
	}
	if err := ValidateDepartment(s.Department); err != nil {
		return err
	}
	if err := ValidateSemester(s.Semester); err != nil {
		return err
	}
	if s.EnrollmentYear < 2000 {
		return errors.New("enrollment year is required")
	}
	return nil
}
