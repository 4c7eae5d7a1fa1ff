package ports

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// UpdateUserInput carries the admin-editable fields. Empty values keep the
// stored value.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// ChangePasswordInput carries a password change. CurrentPassword is required
// unless an admin changes another account's password.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
	ByAdmin         bool
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	RegistrationStats(ctx context.Context) ([]domain.RegistrationStats, error)
}

type FavoriteService interface {
	List(ctx context.Context, userID string) ([]domain.Property, error)
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
}
