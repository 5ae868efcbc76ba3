package teacher

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Teacher is the role-specific profile for a teacher account.
type Teacher struct {
	ID         int64     `json:"id"`
	TeacherID  uuid.UUID `json:"teacherId"`
	UserID     uuid.UUID `json:"userId"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employeeId"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Phone      *string   `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NormalizeEmployeeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (t *Teacher) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("name is required")
	}
	if t.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	if strings.TrimSpace(t.Department) == "" {
		return errors.New("department is required")
	}
	return nil
}
