package subject

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for subjects.
type Repository interface {
	Create(ctx context.Context, s *Subject) error
	GetByID(ctx context.Context, subjectID uuid.UUID) (*Subject, error)
	GetByCode(ctx context.Context, code string) (*Subject, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*Subject, error)
	ListByDepartmentSemester(ctx context.Context, department string, semester int) ([]*Subject, error)
	List(ctx context.Context, limit, offset int) ([]*Subject, error)
	Update(ctx context.Context, s *Subject) error
	IncrementTotalLectures(ctx context.Context, subjectID uuid.UUID) error
	Delete(ctx context.Context, subjectID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
