package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/estatehub/listing-api/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTaken(u.Email, "") {
		return domain.ErrUserExists
	}
	clone := *u
	clone.Email = strings.ToLower(clone.Email)
	r.store.users[u.ID] = clone
	return nil
}

// emailTaken must be called with the lock held.
func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, existing := range r.store.users {
		if id != exceptID && strings.EqualFold(existing.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool {
		return u.Provider == provider && u.ProviderID == providerID
	})
}

func (r *UserRepository) LinkProvider(ctx context.Context, id, provider, providerID string) error {
	return r.mutate(ctx, id, func(u *domain.User) error {
		u.Provider = provider
		u.ProviderID = providerID
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b domain.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.mutate(ctx, u.ID, func(stored *domain.User) error {
		if r.emailTaken(u.Email, u.ID) {
			return domain.ErrUserExists
		}
		stored.Name = u.Name
		stored.Email = strings.ToLower(u.Email)
		stored.Role = u.Role
		stored.UpdatedAt = u.UpdatedAt
		return nil
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.mutate(ctx, id, func(u *domain.User) error {
		u.PasswordHash = hash
		u.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *UserRepository) mutate(ctx context.Context, id string, fn func(*domain.User) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}
	r.store.users[id] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *UserRepository) RegistrationStats(ctx context.Context, since time.Time) ([]domain.RegistrationStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byDay := make(map[time.Time]*domain.RegistrationStats)
	for _, u := range r.store.users {
		if u.CreatedAt.Before(since) {
			continue
		}
		day := u.CreatedAt.UTC().Truncate(24 * time.Hour)
		st, ok := byDay[day]
		if !ok {
			st = &domain.RegistrationStats{Day: day}
			byDay[day] = st
		}
		st.TotalUsers++
		switch u.Provider {
		case domain.ProviderGoogle:
			st.GoogleUsers++
		case domain.ProviderFacebook:
			st.FacebookUsers++
		case domain.ProviderApple:
			st.AppleUsers++
		default:
			st.EmailUsers++
		}
	}

	out := make([]domain.RegistrationStats, 0, len(byDay))
	for _, st := range byDay {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b domain.RegistrationStats) int { return b.Day.Compare(a.Day) })
	return out, nil
}
