package filter

import (
	"slices"
	"strings"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// Match reports whether p satisfies every predicate.
func Match(p *domain.Property, preds []Predicate) bool {
	for _, pr := range preds {
		if !matchOne(p, pr) {
			return false
		}
	}
	return true
}

func matchOne(p *domain.Property, pr Predicate) bool {
	switch pr.Op {
	case OpContains:
		term := strings.ToLower(pr.Value.(string))
		for _, s := range textValues(p, pr.Field) {
			if strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
		return false
	case OpEqualFold:
		return strings.EqualFold(stringValue(p, pr.Field), pr.Value.(string))
	case OpEqual:
		return stringValue(p, pr.Field) == pr.Value.(string)
	case OpGTE:
		return numberValue(p, pr.Field) >= pr.Value.(float64)
	case OpLTE:
		return numberValue(p, pr.Field) <= pr.Value.(float64)
	case OpHasAll:
		for _, tag := range pr.Value.([]string) {
			if !slices.Contains(p.Amenities, domain.Amenity(tag)) {
				return false
			}
		}
		return true
	}
	return false
}

func textValues(p *domain.Property, f Field) []string {
	if f != FieldText {
		return []string{stringValue(p, f)}
	}
	out := make([]string, len(TextColumns))
	for i, col := range TextColumns {
		out[i] = stringValue(p, col)
	}
	return out
}

func stringValue(p *domain.Property, f Field) string {
	switch f {
	case FieldLocation:
		return p.Location
	case FieldTitle:
		return p.Title
	case FieldState:
		return p.State
	case FieldArea:
		return p.Area
	case FieldPropertyType:
		return string(p.PropertyType)
	case FieldStatus:
		return string(p.Status)
	}
	return ""
}

func numberValue(p *domain.Property, f Field) float64 {
	switch f {
	case FieldPrice:
		return p.Price
	case FieldBedrooms:
		return float64(p.Bedrooms)
	case FieldBathrooms:
		return float64(p.Bathrooms)
	}
	return 0
}

// Apply returns the properties matching c in the order given by s. The input slice
// is left untouched; the returned slice is a fresh copy.
func Apply(props []domain.Property, c Criteria, s Sort) []domain.Property {
	preds := c.Predicates()
	out := make([]domain.Property, 0, len(props))
	for i := range props {
		if Match(&props[i], preds) {
			out = append(out, props[i])
		}
	}
	SortProperties(out, s)
	return out
}

// SortProperties orders props in place.
func SortProperties(props []domain.Property, s Sort) {
	slices.SortStableFunc(props, func(a, b domain.Property) int {
		switch {
		case s.Less(&a, &b):
			return -1
		case s.Less(&b, &a):
			return 1
		}
		return 0
	})
}

// Run applies a full query to an in-memory collection: match, order, then page.
func Run(props []domain.Property, q Query) Result {
	matched := Apply(props, q.Criteria, q.Sort)
	start, end := q.Page.Window(len(matched))
	return NewResult(matched[start:end], len(matched), q.Page)
}
