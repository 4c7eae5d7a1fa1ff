// Package memory keeps listings, accounts and favorites in process memory behind
// the same ports as the database backends. It evaluates searches with the
// filter package's matcher directly.
package memory

import (
	"sync"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// Store is the shared state of the memory repositories. Records are copied in
// and out so callers never alias stored data.
type Store struct {
	mu         sync.RWMutex
	properties map[string]domain.Property
	users      map[string]domain.User
	favorites  []domain.Favorite
}

func NewStore() *Store {
	return &Store{
		properties: make(map[string]domain.Property),
		users:      make(map[string]domain.User),
	}
}

func cloneProperty(p domain.Property) domain.Property {
	p.Amenities = append([]domain.Amenity{}, p.Amenities...)
	p.IsFavorite = false
	return p
}

// snapshot must be called with the read lock held.
func (s *Store) snapshot() []domain.Property {
	out := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, cloneProperty(p))
	}
	return out
}
