package ports

import (
	"context"
	"time"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts. Emails are stored
// lower-cased and are unique; Create returns domain.ErrUserExists on conflict.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error)
	// LinkProvider attaches a federated identity to an existing account.
	LinkProvider(ctx context.Context, id, provider, providerID string) error
	List(ctx context.Context) ([]domain.User, error)
	// Update writes name, email and role.
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	// RegistrationStats groups sign-ups created at or after since by UTC day, newest day first.
	RegistrationStats(ctx context.Context, since time.Time) ([]domain.RegistrationStats, error)
}
