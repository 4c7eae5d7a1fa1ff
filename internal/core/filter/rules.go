package filter

import (
	"strings"
)

// rule turns one criteria field into at most one predicate. The order of the table
// is the order predicates are emitted and applied in.
type rule struct {
	key   string
	field Field
	op    Op
	value func(Criteria) (any, bool)
}

var rules = []rule{
	{KeyLocation, FieldText, OpContains, text(func(c Criteria) string { return c.Location })},
	{KeyState, FieldState, OpEqualFold, text(func(c Criteria) string { return c.State })},
	{KeyArea, FieldArea, OpEqualFold, text(func(c Criteria) string { return c.Area })},
	{KeyPropertyType, FieldPropertyType, OpEqual, text(func(c Criteria) string { return string(c.PropertyType) })},
	{KeyStatus, FieldStatus, OpEqual, text(func(c Criteria) string { return string(c.Status) })},
	{KeyMinPrice, FieldPrice, OpGTE, bound(func(c Criteria) Bound { return c.MinPrice })},
	{KeyMaxPrice, FieldPrice, OpLTE, bound(func(c Criteria) Bound { return c.MaxPrice })},
	{KeyBedrooms, FieldBedrooms, OpGTE, bound(func(c Criteria) Bound { return c.Bedrooms })},
	{KeyBathrooms, FieldBathrooms, OpGTE, bound(func(c Criteria) Bound { return c.Bathrooms })},
	{KeyAmenities, FieldAmenities, OpHasAll, amenityTags},
}

func (r rule) compile(c Criteria) (Predicate, bool) {
	v, ok := r.value(c)
	if !ok {
		return Predicate{}, false
	}
	return Predicate{Field: r.field, Op: r.op, Value: v}, true
}

// Fields lists every attribute the rule table can constrain, with FieldText
// expanded into TextColumns. Storage adapters must map each of them.
func Fields() []Field {
	var out []Field
	seen := map[Field]bool{}
	add := func(f Field) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, r := range rules {
		if r.field == FieldText {
			for _, col := range TextColumns {
				add(col)
			}
			continue
		}
		add(r.field)
	}
	return out
}

func text(get func(Criteria) string) func(Criteria) (any, bool) {
	return func(c Criteria) (any, bool) {
		v := strings.TrimSpace(get(c))
		return v, v != ""
	}
}

func bound(get func(Criteria) Bound) func(Criteria) (any, bool) {
	return func(c Criteria) (any, bool) {
		v, ok := get(c).Get()
		return v, ok
	}
}

func amenityTags(c Criteria) (any, bool) {
	if len(c.Amenities) == 0 {
		return nil, false
	}
	tags := make([]string, 0, len(c.Amenities))
	seen := make(map[string]struct{}, len(c.Amenities))
	for _, a := range c.Amenities {
		if _, dup := seen[string(a)]; dup {
			continue
		}
		seen[string(a)] = struct{}{}
		tags = append(tags, string(a))
	}
	return tags, true
}
