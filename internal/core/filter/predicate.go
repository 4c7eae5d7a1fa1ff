package filter

// Field names a property attribute a predicate constrains.
type Field string

const (
	// FieldText is the free-text location search; it spans TextColumns.
	FieldText         Field = "text"
	FieldLocation     Field = "location"
	FieldTitle        Field = "title"
	FieldState        Field = "state"
	FieldArea         Field = "area"
	FieldPropertyType Field = "property_type"
	FieldStatus       Field = "status"
	FieldPrice        Field = "price"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldAmenities    Field = "amenities"
)

// TextColumns lists the attributes a FieldText predicate searches, in storage naming.
var TextColumns = []Field{FieldLocation, FieldState, FieldArea, FieldTitle}

// Op is the comparison a predicate applies.
type Op uint8

const (
	// OpContains is a case-insensitive substring match. Value is a string.
	OpContains Op = iota + 1
	// OpEqualFold is a case-insensitive equality. Value is a string.
	OpEqualFold
	// OpEqual is an exact equality on a canonical enum value. Value is a string.
	OpEqual
	// OpGTE and OpLTE are inclusive numeric bounds. Value is a float64.
	OpGTE
	OpLTE
	// OpHasAll requires every listed tag to be present. Value is a []string.
	OpHasAll
)

func (o Op) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEqualFold:
		return "equal_fold"
	case OpEqual:
		return "equal"
	case OpGTE:
		return "gte"
	case OpLTE:
		return "lte"
	case OpHasAll:
		return "has_all"
	}
	return "unknown"
}

// Predicate is one backend-neutral constraint. Storage adapters compile a slice of
// predicates, ANDed together, into their native query form.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}
