package filter

import (
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// Query-string keys understood by ParseQuery.
const (
	KeyLocation     = "location"
	KeyState        = "state"
	KeyArea         = "area"
	KeyPropertyType = "propertyType"
	KeyStatus       = "status"
	KeyMinPrice     = "minPrice"
	KeyMaxPrice     = "maxPrice"
	KeyBedrooms     = "bedrooms"
	KeyBathrooms    = "bathrooms"
	KeyAmenities    = "amenities"
)

// ValidationError lists every criterion that could not be interpreted.
// It is returned instead of applying any part of the request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+" "+e.Fields[k])
	}
	return "invalid search criteria: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(key, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[key] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseQuery builds Criteria from a flat key/value map such as a URL query.
// Keys it does not know are ignored.
func ParseQuery(v url.Values) (Criteria, error) {
	var (
		c    Criteria
		verr ValidationError
	)
	c.Location = strings.TrimSpace(v.Get(KeyLocation))
	c.State = strings.TrimSpace(v.Get(KeyState))
	c.Area = strings.TrimSpace(v.Get(KeyArea))

	if raw := strings.TrimSpace(v.Get(KeyPropertyType)); raw != "" && !strings.EqualFold(raw, "any") {
		t, ok := domain.ParsePropertyType(raw)
		if !ok {
			verr.add(KeyPropertyType, "is not a known property type")
		}
		c.PropertyType = t
	}

	if raw := strings.TrimSpace(v.Get(KeyStatus)); raw != "" && !strings.EqualFold(raw, "any") {
		st, ok := domain.ParseListingStatus(raw)
		if !ok {
			verr.add(KeyStatus, "must be sale or rent")
		}
		c.Status = st
	}

	bounds := []struct {
		key       string
		dst       *Bound
		countForm bool
	}{
		{KeyMinPrice, &c.MinPrice, false},
		{KeyMaxPrice, &c.MaxPrice, false},
		{KeyBedrooms, &c.Bedrooms, true},
		{KeyBathrooms, &c.Bathrooms, true},
	}
	for _, b := range bounds {
		parsed, err := parseBound(v.Get(b.key), b.countForm)
		if err != nil {
			verr.add(b.key, err.Error())
			continue
		}
		*b.dst = parsed
	}

	if minP, ok := c.MinPrice.Get(); ok {
		if maxP, ok := c.MaxPrice.Get(); ok && minP > maxP {
			verr.add(KeyMaxPrice, "must not be less than minPrice")
		}
	}

	for _, raw := range splitList(v[KeyAmenities]) {
		a, ok := domain.ParseAmenity(raw)
		if !ok {
			verr.add(KeyAmenities, "contains unknown amenity "+raw)
			continue
		}
		c.Amenities = append(c.Amenities, a)
	}
	if c.Amenities != nil {
		c.Amenities = domain.UniqueAmenities(c.Amenities)
	}

	if err := verr.orNil(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// ParseRequest reads criteria, sort and paging from one query string and reports
// all problems together.
func ParseRequest(v url.Values) (Query, error) {
	var (
		q    Query
		verr ValidationError
	)

	c, err := ParseQuery(v)
	var cerr *ValidationError
	if errors.As(err, &cerr) {
		for k, msg := range cerr.Fields {
			verr.add(k, msg)
		}
	}
	q.Criteria = c

	s, err := ParseSort(v.Get(KeySort))
	if err != nil {
		verr.add(KeySort, err.Error())
	}
	q.Sort = s

	p, perr := ParsePage(v)
	for k, msg := range perr {
		verr.add(k, msg)
	}
	q.Page = p

	if err := verr.orNil(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Values renders the criteria back into query-string form. ParseQuery(c.Values())
// yields criteria equal to c.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set(KeyLocation, c.Location)
	set(KeyState, c.State)
	set(KeyArea, c.Area)
	set(KeyPropertyType, string(c.PropertyType))
	set(KeyStatus, string(c.Status))
	set(KeyMinPrice, c.MinPrice.String())
	set(KeyMaxPrice, c.MaxPrice.String())
	set(KeyBedrooms, c.Bedrooms.String())
	set(KeyBathrooms, c.Bathrooms.String())
	if len(c.Amenities) > 0 {
		tags := make([]string, len(c.Amenities))
		for i, a := range c.Amenities {
			tags[i] = string(a)
		}
		v.Set(KeyAmenities, strings.Join(tags, ","))
	}
	return v
}

func splitList(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
