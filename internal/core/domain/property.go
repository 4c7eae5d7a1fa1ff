package domain

import (
	"errors"
	"time"
)

var ErrPropertyNotFound = errors.New("property not found")
var ErrInvalidProperty = errors.New("invalid property")
var ErrForbidden = errors.New("access forbidden")
var ErrMediaDisabled = errors.New("image uploads are not configured")

// ErrStoreUnavailable marks failures of the backing store itself, as opposed to
// a query that simply matched nothing.
var ErrStoreUnavailable = errors.New("store unavailable")

// Property is a real-estate listing.
type Property struct {
	ID           string        `json:"id" bson:"_id"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64       `json:"price" bson:"price"`
	Location     string        `json:"location" bson:"location"`
	State        string        `json:"state,omitempty" bson:"state,omitempty"`
	Area         string        `json:"area,omitempty" bson:"area,omitempty"`
	Status       ListingStatus `json:"status" bson:"status"`
	PropertyType PropertyType  `json:"propertyType" bson:"property_type"`
	Bedrooms     int           `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    int           `json:"bathrooms" bson:"bathrooms"`
	FloorArea    float64       `json:"floorArea" bson:"floor_area"`
	Amenities    []Amenity     `json:"amenities" bson:"amenities"`
	ImageURL     string        `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	IsFeatured   bool          `json:"isFeatured" bson:"is_featured"`
	IsFavorite   bool          `json:"isFavorite" bson:"-"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

// Normalize enforces the record-level invariants that do not depend on the caller:
// room counts are zeroed for types without rooms and amenities are deduplicated.
func (p *Property) Normalize() {
	if !p.PropertyType.HasRooms() {
		p.Bedrooms = 0
		p.Bathrooms = 0
	}
	p.Amenities = UniqueAmenities(p.Amenities)
}

// Validate reports the first invariant the property violates, wrapped in ErrInvalidProperty.
func (p *Property) Validate() error {
	switch {
	case p.Title == "":
		return invalid("title is required")
	case p.Price < 0:
		return invalid("price must not be negative")
	case p.FloorArea <= 0:
		return invalid("floor area must be greater than 0")
	case p.Bedrooms < 0 || p.Bathrooms < 0:
		return invalid("room counts must not be negative")
	case !p.Status.Valid():
		return invalid("status must be sale or rent")
	case !p.PropertyType.Valid():
		return invalid("unknown property type")
	}
	for _, a := range p.Amenities {
		if !a.Valid() {
			return invalid("unknown amenity " + string(a))
		}
	}
	return nil
}

func invalid(msg string) error {
	return &propertyError{msg: msg}
}

type propertyError struct{ msg string }

func (e *propertyError) Error() string { return e.msg }
func (e *propertyError) Unwrap() error { return ErrInvalidProperty }
