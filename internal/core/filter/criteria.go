// Package filter holds the single property search contract shared by every
// storage backend and by in-process callers.
//
// A Criteria is compiled by one rule table (rules.go) into backend-neutral
// Predicates. The in-memory matcher in this package, the SQL builder and the BSON
// builder all consume those predicates, so the backends cannot drift apart.
package filter

import (
	"github.com/estatehub/listing-api/internal/core/domain"
)

// Criteria is the canonical set of optional search constraints. All constraints
// are ANDed. Empty strings, a nil amenity list and unset bounds impose nothing.
type Criteria struct {
	// Location is a free-text term matched as a substring of the location,
	// state, area or title.
	Location     string
	State        string
	Area         string
	PropertyType domain.PropertyType
	Status       domain.ListingStatus
	MinPrice     Bound
	MaxPrice     Bound
	Bedrooms     Bound
	Bathrooms    Bound
	Amenities    []domain.Amenity
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	return len(c.Predicates()) == 0
}

// Predicates compiles the criteria through the rule table.
func (c Criteria) Predicates() []Predicate {
	preds := make([]Predicate, 0, len(rules))
	for _, r := range rules {
		if p, ok := r.compile(c); ok {
			preds = append(preds, p)
		}
	}
	return preds
}

// Query bundles criteria with ordering and paging.
type Query struct {
	Criteria Criteria
	Sort     Sort
	Page     Page
}
