package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
)

const (
	FeaturedLimit = 6
	RecentLimit   = 9
	SimilarLimit  = 3
)

type PropertyService struct {
	repo      ports.PropertyRepository
	favorites ports.FavoriteRepository
	images    ports.ImageStore
	events    ports.LifecyclePublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPropertyService wires the listing use cases. images and events may be nil:
// uploads then fail with domain.ErrMediaDisabled and deletes skip background cleanup.
func NewPropertyService(
	repo ports.PropertyRepository,
	favorites ports.FavoriteRepository,
	images ports.ImageStore,
	events ports.LifecyclePublisher,
	logger zerolog.Logger,
) *PropertyService {
	return &PropertyService{
		repo:      repo,
		favorites: favorites,
		images:    images,
		events:    events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *PropertyService) Search(ctx context.Context, q filter.Query, viewerID string) (filter.Result, error) {
	res, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return filter.Result{}, fmt.Errorf("search properties: %w", err)
	}
	s.markFavorites(ctx, viewerID, res.Items)
	return res, nil
}

func (s *PropertyService) Get(ctx context.Context, id, viewerID string) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items := []domain.Property{*p}
	s.markFavorites(ctx, viewerID, items)
	return &items[0], nil
}

func (s *PropertyService) Featured(ctx context.Context, viewerID string) ([]domain.Property, error) {
	items, err := s.repo.Featured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("featured properties: %w", err)
	}
	s.markFavorites(ctx, viewerID, items)
	return items, nil
}

func (s *PropertyService) Recent(ctx context.Context, viewerID string) ([]domain.Property, error) {
	res, err := s.Search(ctx, filter.Query{
		Sort: filter.SortNewest,
		Page: filter.Page{Number: 1, Limit: RecentLimit},
	}, viewerID)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Similar returns listings in the same area (or state, when the area is blank)
// with the same status, excluding the property itself.
func (s *PropertyService) Similar(ctx context.Context, id, viewerID string) ([]domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := filter.Criteria{Status: p.Status, Area: p.Area}
	if c.Area == "" {
		c.State = p.State
	}
	res, err := s.Search(ctx, filter.Query{
		Criteria: c,
		Sort:     filter.SortNewest,
		Page:     filter.Page{Number: 1, Limit: SimilarLimit + 1},
	}, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, SimilarLimit)
	for _, item := range res.Items {
		if item.ID == p.ID || len(out) == SimilarLimit {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *PropertyService) Create(ctx context.Context, in ports.PropertyInput) (*domain.Property, error) {
	p, err := toProperty(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}
	s.logger.Info().Str("property_id", p.ID).Str("type", string(p.PropertyType)).Msg("property created")
	return p, nil
}

// Update replaces every field of the listing. An empty ImageURL keeps the
// current image, since images are managed through SetImage.
func (s *PropertyService) Update(ctx context.Context, id string, in ports.PropertyInput) (*domain.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := toProperty(in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	if p.ImageURL == "" {
		p.ImageURL = existing.ImageURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("property_id", p.ID).Msg("property updated")
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Enqueue(ports.LifecycleEvent{Kind: ports.PropertyDeleted, EntityID: id})
	}
	s.logger.Info().Str("property_id", id).Msg("property deleted")
	return nil
}

func (s *PropertyService) SetImage(ctx context.Context, id string, image io.Reader) (*domain.Property, error) {
	if s.images == nil {
		return nil, domain.ErrMediaDisabled
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, image, "property-"+p.ID)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	p.ImageURL = url
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// markFavorites sets IsFavorite for the viewer. A failed lookup degrades to
// "not favorite" rather than failing the read.
func (s *PropertyService) markFavorites(ctx context.Context, viewerID string, items []domain.Property) {
	if viewerID == "" || s.favorites == nil || len(items) == 0 {
		return
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	favs, err := s.favorites.FavoriteIDs(ctx, viewerID, ids)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", viewerID).Msg("favorite lookup failed")
		return
	}
	for i := range items {
		items[i].IsFavorite = favs[items[i].ID]
	}
}

func toProperty(in ports.PropertyInput) (*domain.Property, error) {
	status, ok := domain.ParseListingStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidProperty, in.Status)
	}
	ptype, ok := domain.ParsePropertyType(in.PropertyType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown property type %q", domain.ErrInvalidProperty, in.PropertyType)
	}
	amenities := make([]domain.Amenity, 0, len(in.Amenities))
	for _, raw := range in.Amenities {
		a, ok := domain.ParseAmenity(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown amenity %q", domain.ErrInvalidProperty, raw)
		}
		amenities = append(amenities, a)
	}

	p := &domain.Property{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Location:     in.Location,
		State:        in.State,
		Area:         in.Area,
		Status:       status,
		PropertyType: ptype,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		FloorArea:    in.FloorArea,
		Amenities:    amenities,
		ImageURL:     in.ImageURL,
		IsFeatured:   in.IsFeatured,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
