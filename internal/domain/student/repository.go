package student

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for student profiles.
type Repository interface {
	Create(ctx context.Context, s *Student) error
	GetByID(ctx context.Context, studentID uuid.UUID) (*Student, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*Student, error)
	ListByDepartmentSemester(ctx context.Context, department string, semester int) ([]*Student, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Student, error)
	List(ctx context.Context, limit, offset int) ([]*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, studentID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
