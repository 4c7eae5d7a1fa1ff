package ports

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// RegisterInput carries a local sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// SocialLoginInput carries an identity asserted by a federated provider. The
// provider token exchange happens upstream; only the resulting identity is trusted here.
type SocialLoginInput struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	SocialLogin(ctx context.Context, in SocialLoginInput) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
