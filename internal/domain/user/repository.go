package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error
	Delete(ctx context.Context, userID uuid.UUID) error
	CountByRole(ctx context.Context, role Role) (int, error)
}
