package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, id, email, password string) *domain.User {
	t.Helper()
	u := &domain.User{ID: id, Name: "User " + id, Email: email, Role: domain.RoleUser, CreatedAt: time.Now().UTC()}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		u.PasswordHash = string(hash)
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserService_Update(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "old@example.com", "")
	svc := NewUserService(repo, nil, discardLogger)

	u, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Email: "NEW@example.com", Role: domain.RoleAgent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "new@example.com" || u.Role != domain.RoleAgent || u.Name != "User u1" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Role: "owner"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "ghost", ports.UpdateUserInput{Name: "x"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_PublishesCleanup(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "a@example.com", "")
	pub := &recordingPublisher{}
	svc := NewUserService(repo, pub, discardLogger)

	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Kind != ports.UserDeleted || pub.events[0].EntityID != "u1" {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
	if err := svc.Delete(context.Background(), "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "a@example.com", "old-pass")
	svc := NewUserService(repo, nil, discardLogger)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, ports.ChangePasswordInput{UserID: "u1", CurrentPassword: "nope", NewPassword: "new-pass"})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(ctx, ports.ChangePasswordInput{UserID: "u1", CurrentPassword: "old-pass", NewPassword: "new-pass"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("new-pass")) != nil {
		t.Fatal("password not changed")
	}

	if err := svc.ChangePassword(ctx, ports.ChangePasswordInput{UserID: "u1", NewPassword: "admin-set", ByAdmin: true}); err != nil {
		t.Fatalf("admin change failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("admin-set")) != nil {
		t.Fatal("admin password change not applied")
	}
}

func TestUserService_ChangePassword_SocialAccountSetsFirstPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u2", "social@example.com", "")
	svc := NewUserService(repo, nil, discardLogger)

	if err := svc.ChangePassword(context.Background(), ports.ChangePasswordInput{UserID: "u2", NewPassword: "first-pass"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.users["u2"].PasswordHash == "" {
		t.Fatal("expected password to be set")
	}
}

func TestUserService_RegistrationStats_LastThirtyDays(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "recent", "r@example.com", "")
	old := seedUser(t, repo, "old", "o@example.com", "")
	repo.users[old.ID].CreatedAt = time.Now().UTC().AddDate(0, 0, -45)
	svc := NewUserService(repo, nil, discardLogger)

	stats, err := svc.RegistrationStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 1 || stats[0].TotalUsers != 1 {
		t.Fatalf("expected one recent registration, got %+v", stats)
	}
}

func TestUserService_ChangePassword_OverBcryptLimit(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "a@example.com", "old-pass")
	svc := NewUserService(repo, nil, discardLogger)

	err := svc.ChangePassword(context.Background(), ports.ChangePasswordInput{
		UserID: "u1", NewPassword: strings.Repeat("ñ", 40), ByAdmin: true,
	})
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("old-pass")) != nil {
		t.Fatal("password must be left unchanged")
	}
}
