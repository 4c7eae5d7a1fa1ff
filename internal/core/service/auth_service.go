package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

// AuthService implements registration, password login and social login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a local account. Only the user and agent roles can be
// self-assigned; an empty role means user.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAgent {
		return "", nil, domain.ErrForbidden
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	// Accounts created through a social provider have no password.
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	return s.issue(user)
}

// SocialLogin resolves a federated identity: a known provider account signs in
// directly, an existing email is linked to the provider, otherwise a new
// password-less account is created.
func (s *AuthService) SocialLogin(ctx context.Context, in ports.SocialLoginInput) (string, *domain.User, error) {
	provider, ok := domain.ParseProvider(in.Provider)
	if !ok || in.ProviderID == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByProvider(ctx, provider, in.ProviderID)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	email := normalizeEmail(in.Email)
	if email != "" {
		user, err = s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			if err := s.repo.LinkProvider(ctx, user.ID, provider, in.ProviderID); err != nil {
				return "", nil, fmt.Errorf("link %s account: %w", provider, err)
			}
			user.Provider = provider
			user.ProviderID = in.ProviderID
			return s.issue(user)
		case !errors.Is(err, domain.ErrUserNotFound):
			return "", nil, err
		}
	}
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	now := time.Now().UTC()
	user = &domain.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Role:       domain.RoleUser,
		Provider:   provider,
		ProviderID: in.ProviderID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) issue(user *domain.User) (string, *domain.User, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword bcrypts password. bcrypt only accepts up to 72 bytes, which
// multibyte passwords reach before 72 characters.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: longer than 72 bytes", domain.ErrInvalidPassword)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
