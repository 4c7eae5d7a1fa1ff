package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estatehub/listing-api/internal/core/ports"
)

type lifecycleService struct {
	favorites ports.FavoriteRepository
	log       zerolog.Logger
}

// NewLifecycleService returns the cleanup run by the lifecycle dispatcher after
// deletes: favorites pointing at a removed property or user are dropped.
func NewLifecycleService(favorites ports.FavoriteRepository, log zerolog.Logger) ports.LifecycleService {
	return &lifecycleService{favorites: favorites, log: log}
}

func (s *lifecycleService) Process(ctx context.Context, ev ports.LifecycleEvent) error {
	var err error
	switch ev.Kind {
	case ports.PropertyDeleted:
		err = s.favorites.DeleteByProperty(ctx, ev.EntityID)
	case ports.UserDeleted:
		err = s.favorites.DeleteByUser(ctx, ev.EntityID)
	default:
		return fmt.Errorf("lifecycle: unknown event kind %q", ev.Kind)
	}
	if err != nil {
		return fmt.Errorf("lifecycle %s: %w", ev.Kind, err)
	}

	s.log.Debug().
		Str("kind", string(ev.Kind)).
		Str("entity_id", ev.EntityID).
		Msg("lifecycle event processed")
	return nil
}
