package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubPropertyService struct {
	searchFn   func(ctx context.Context, q filter.Query, viewerID string) (filter.Result, error)
	getFn      func(ctx context.Context, id, viewerID string) (*domain.Property, error)
	createFn   func(ctx context.Context, in ports.PropertyInput) (*domain.Property, error)
	updateFn   func(ctx context.Context, id string, in ports.PropertyInput) (*domain.Property, error)
	deleteFn   func(ctx context.Context, id string) error
	setImageFn func(ctx context.Context, id string, image io.Reader) (*domain.Property, error)
	listFn     func(ctx context.Context, viewerID string) ([]domain.Property, error)
}

func (s *stubPropertyService) Search(ctx context.Context, q filter.Query, viewerID string) (filter.Result, error) {
	return s.searchFn(ctx, q, viewerID)
}

func (s *stubPropertyService) Get(ctx context.Context, id, viewerID string) (*domain.Property, error) {
	return s.getFn(ctx, id, viewerID)
}

func (s *stubPropertyService) Featured(ctx context.Context, viewerID string) ([]domain.Property, error) {
	return s.listFn(ctx, viewerID)
}

func (s *stubPropertyService) Recent(ctx context.Context, viewerID string) ([]domain.Property, error) {
	return s.listFn(ctx, viewerID)
}

func (s *stubPropertyService) Similar(ctx context.Context, id, viewerID string) ([]domain.Property, error) {
	return s.listFn(ctx, viewerID)
}

func (s *stubPropertyService) Create(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	return s.createFn(ctx, in)
}

func (s *stubPropertyService) Update(ctx context.Context, id string, in ports.PropertyInput) (*domain.Property, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubPropertyService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPropertyService) SetImage(ctx context.Context, id string, image io.Reader) (*domain.Property, error) {
	return s.setImageFn(ctx, id, image)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	socialFn   func(ctx context.Context, in ports.SocialLoginInput) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) SocialLogin(ctx context.Context, in ports.SocialLoginInput) (string, *domain.User, error) {
	return s.socialFn(ctx, in)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubUserService struct {
	changePasswordFn func(ctx context.Context, in ports.ChangePasswordInput) error
	statsFn          func(ctx context.Context) ([]domain.RegistrationStats, error)
	listFn           func(ctx context.Context) ([]domain.User, error)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) { return s.listFn(ctx) }

func (s *stubUserService) Get(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(context.Context, string, ports.UpdateUserInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Delete(context.Context, string) error { return nil }

func (s *stubUserService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, in)
}

func (s *stubUserService) RegistrationStats(ctx context.Context) ([]domain.RegistrationStats, error) {
	return s.statsFn(ctx)
}

type stubFavoriteService struct {
	added   [][2]string
	removed [][2]string
	addErr  error
}

func (s *stubFavoriteService) List(context.Context, string) ([]domain.Property, error) {
	return nil, nil
}

func (s *stubFavoriteService) Add(_ context.Context, userID, propertyID string) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, [2]string{userID, propertyID})
	return nil
}

func (s *stubFavoriteService) Remove(_ context.Context, userID, propertyID string) error {
	s.removed = append(s.removed, [2]string{userID, propertyID})
	return nil
}
