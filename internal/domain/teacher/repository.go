package teacher

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for teacher profiles.
type Repository interface {
	Create(ctx context.Context, t *Teacher) error
	GetByID(ctx context.Context, teacherID uuid.UUID) (*Teacher, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Teacher, error)
	List(ctx context.Context, limit, offset int) ([]*Teacher, error)
	Update(ctx context.Context, t *Teacher) error
	Delete(ctx context.Context, teacherID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
