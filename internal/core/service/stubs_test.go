package service

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Property repository stub
// ---------------------------------------------------------------------------

type stubPropertyRepo struct {
	byID    map[string]*domain.Property
	findErr error // if set, FindAll returns this error
}

func newStubPropertyRepo(props ...domain.Property) *stubPropertyRepo {
	r := &stubPropertyRepo{byID: make(map[string]*domain.Property)}
	for i := range props {
		clone := props[i]
		r.byID[clone.ID] = &clone
	}
	return r
}

func (r *stubPropertyRepo) all() []domain.Property {
	out := make([]domain.Property, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out
}

// FindAll evaluates the query with the in-memory matcher, as the memory backend does.
func (r *stubPropertyRepo) FindAll(_ context.Context, q filter.Query) (filter.Result, error) {
	if r.findErr != nil {
		return filter.Result{}, r.findErr
	}
	return filter.Run(r.all(), q), nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) Featured(_ context.Context, limit int) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range filter.Apply(r.all(), filter.Criteria{}, filter.SortNewest) {
		if p.IsFeatured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// User repository stub
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	linkErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByProvider(_ context.Context, provider, providerID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) LinkProvider(_ context.Context, id, provider, providerID string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Provider = provider
	u.ProviderID = providerID
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) RegistrationStats(_ context.Context, since time.Time) ([]domain.RegistrationStats, error) {
	var total int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			total++
		}
	}
	if total == 0 {
		return []domain.RegistrationStats{}, nil
	}
	return []domain.RegistrationStats{{Day: since.Truncate(24 * time.Hour), TotalUsers: total}}, nil
}

// ---------------------------------------------------------------------------
// Favorite repository stub
// ---------------------------------------------------------------------------

type stubFavoriteRepo struct {
	props   *stubPropertyRepo
	pairs   []domain.Favorite
	idsErr  error
	deleted []string // "property:<id>" / "user:<id>" per cleanup call
}

func newStubFavoriteRepo(props *stubPropertyRepo) *stubFavoriteRepo {
	return &stubFavoriteRepo{props: props}
}

func (r *stubFavoriteRepo) Add(_ context.Context, userID, propertyID string) error {
	for _, f := range r.pairs {
		if f.UserID == userID && f.PropertyID == propertyID {
			return nil
		}
	}
	r.pairs = append(r.pairs, domain.Favorite{UserID: userID, PropertyID: propertyID, CreatedAt: time.Now()})
	return nil
}

func (r *stubFavoriteRepo) Remove(_ context.Context, userID, propertyID string) error {
	r.pairs = slices.DeleteFunc(r.pairs, func(f domain.Favorite) bool {
		return f.UserID == userID && f.PropertyID == propertyID
	})
	return nil
}

func (r *stubFavoriteRepo) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	var out []domain.Property
	for i := len(r.pairs) - 1; i >= 0; i-- {
		if r.pairs[i].UserID != userID {
			continue
		}
		p, err := r.props.FindByID(ctx, r.pairs[i].PropertyID)
		if err != nil {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubFavoriteRepo) FavoriteIDs(_ context.Context, userID string, propertyIDs []string) (map[string]bool, error) {
	if r.idsErr != nil {
		return nil, r.idsErr
	}
	out := make(map[string]bool)
	for _, f := range r.pairs {
		if f.UserID == userID && slices.Contains(propertyIDs, f.PropertyID) {
			out[f.PropertyID] = true
		}
	}
	return out, nil
}

func (r *stubFavoriteRepo) DeleteByProperty(_ context.Context, propertyID string) error {
	r.deleted = append(r.deleted, "property:"+propertyID)
	r.pairs = slices.DeleteFunc(r.pairs, func(f domain.Favorite) bool { return f.PropertyID == propertyID })
	return nil
}

func (r *stubFavoriteRepo) DeleteByUser(_ context.Context, userID string) error {
	r.deleted = append(r.deleted, "user:"+userID)
	r.pairs = slices.DeleteFunc(r.pairs, func(f domain.Favorite) bool { return f.UserID == userID })
	return nil
}

// ---------------------------------------------------------------------------
// Image store and publisher stubs
// ---------------------------------------------------------------------------

type stubImageStore struct {
	uploaded []string
	err      error
}

func (s *stubImageStore) Upload(_ context.Context, image io.Reader, publicID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.ReadAll(image); err != nil {
		return "", err
	}
	s.uploaded = append(s.uploaded, publicID)
	return "https://img.example.com/" + publicID + ".jpg", nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.LifecycleEvent
}

func (p *recordingPublisher) Enqueue(ev ports.LifecycleEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

var errBackendDown = errors.New("connection refused")
