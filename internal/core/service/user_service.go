package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

const statsWindow = 30 * 24 * time.Hour

type UserService struct {
	repo   ports.UserRepository
	events ports.LifecyclePublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, events ports.LifecyclePublisher, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		u.Email = email
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.ErrInvalidRole
		}
		u.Role = in.Role
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", u.Role).Msg("user updated")
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Enqueue(ports.LifecycleEvent{Kind: ports.UserDeleted, EntityID: id})
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ChangePassword verifies the current password unless an admin acts on the
// account. Social-only accounts may set a first password without one.
func (s *UserService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidCredentials
	}
	u, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !in.ByAdmin && u.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return domain.ErrInvalidCredentials
		}
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, hash)
}

// RegistrationStats covers the last 30 days.
func (s *UserService) RegistrationStats(ctx context.Context) ([]domain.RegistrationStats, error) {
	return s.repo.RegistrationStats(ctx, s.now().Add(-statsWindow))
}
