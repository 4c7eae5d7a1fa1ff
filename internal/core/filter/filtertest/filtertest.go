// Package filtertest holds listings and criteria shared by the storage adapter
// tests, so every backend is checked against the in-memory matcher on the same data.
package filtertest

import (
	"time"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// Listings returns a fresh copy of the fixture set. Values are chosen to sit on
// boundaries: LIKE and regex metacharacters, trailing whitespace, equal prices,
// zero-room types and overlapping amenity sets.
func Listings() []domain.Property {
	return []domain.Property{
		{
			ID: "ikoyi-villa", Title: "Waterfront Villa", Location: "Bourdillon Rd, Ikoyi",
			State: "Lagos", Area: "Ikoyi", Status: domain.StatusForSale, PropertyType: domain.TypeVilla,
			Price: 450000000, Bedrooms: 5, Bathrooms: 6, FloorArea: 620,
			Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityWaterfront, domain.AmenitySecurity},
			CreatedAt: base.Add(-1 * time.Hour),
		},
		{
			ID: "lekki-flat", Title: "50%_off Lekki flat", Location: "Admiralty Way",
			State: "lagos", Area: "Lekki Phase 1", Status: domain.StatusForRent, PropertyType: domain.TypeFlat,
			Price: 3500000, Bedrooms: 2, Bathrooms: 2, FloorArea: 110,
			Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityGym},
			CreatedAt: base.Add(-2 * time.Hour),
		},
		{
			ID: "vi-office", Title: "Grade A office", Location: "V.I (Phase 1)",
			State: "Lagos\n", Area: "Victoria Island", Status: domain.StatusForRent, PropertyType: domain.TypeOffice,
			Price: 3500000, FloorArea: 300,
			Amenities: []domain.Amenity{domain.AmenityElevator, domain.AmenityBackupGenerator},
			CreatedAt: base.Add(-3 * time.Hour),
		},
		{
			ID: "maitama-duplex", Title: "Detached duplex", Location: "Maitama",
			State: "FCT", Area: "Maitama", Status: domain.StatusForSale, PropertyType: domain.TypeDuplex,
			Price: 280000000, Bedrooms: 4, Bathrooms: 5, FloorArea: 480,
			Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityGym, domain.AmenityCCTV},
			CreatedAt: base.Add(-4 * time.Hour),
		},
		{
			ID: "epe-land", Title: "Dry land, C of O", Location: "Epe",
			State: "Lagos", Status: domain.StatusForSale, PropertyType: domain.TypeLand,
			Price: 0, FloorArea: 1200,
			Amenities: []domain.Amenity{},
			CreatedAt: base.Add(-5 * time.Hour),
		},
		{
			ID: "ibadan-studio", Title: "Studio near UI", Location: `Bodija\Agbowo`,
			State: "Oyo", Area: "Bodija", Status: domain.StatusForRent, PropertyType: domain.TypeStudio,
			Price: 450000, Bedrooms: 0, Bathrooms: 1, FloorArea: 35,
			Amenities: []domain.Amenity{domain.AmenityFurnished},
			CreatedAt: base.Add(-6 * time.Hour),
		},
	}
}

// Case is one named criteria set.
type Case struct {
	Name     string
	Criteria filter.Criteria
}

// Cases exercises every rule at least once, alone and combined.
func Cases() []Case {
	return []Case{
		{"unset", filter.Criteria{}},
		{"location substring", filter.Criteria{Location: "lekki"}},
		{"location matches title", filter.Criteria{Location: "WATERFRONT"}},
		{"location LIKE metacharacters", filter.Criteria{Location: "50%_off"}},
		{"location percent alone", filter.Criteria{Location: "%"}},
		{"location regex metacharacters", filter.Criteria{Location: "v.i (phase 1)"}},
		{"location backslash", filter.Criteria{Location: `bodija\agbowo`}},
		{"state equal fold", filter.Criteria{State: "LAGOS"}},
		{"state is not a prefix", filter.Criteria{State: "Lag"}},
		{"area equal fold", filter.Criteria{Area: "lekki phase 1"}},
		{"property type", filter.Criteria{PropertyType: domain.TypeOffice}},
		{"status", filter.Criteria{Status: domain.StatusForRent}},
		{"min price inclusive", filter.Criteria{MinPrice: filter.Value(3500000)}},
		{"max price inclusive", filter.Criteria{MaxPrice: filter.Value(3500000)}},
		{"max price zero", filter.Criteria{MaxPrice: filter.Value(0)}},
		{"price any", filter.Criteria{MinPrice: filter.Any(), MaxPrice: filter.Any()}},
		{"bedrooms zero is a constraint", filter.Criteria{Bedrooms: filter.Value(0)}},
		{"bedrooms at least", filter.Criteria{Bedrooms: filter.Value(4)}},
		{"bathrooms at least", filter.Criteria{Bathrooms: filter.Value(2)}},
		{"amenities all", filter.Criteria{Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityGym}}},
		{"amenities none match", filter.Criteria{Amenities: []domain.Amenity{domain.AmenityGym, domain.AmenityFurnished}}},
		{"combined", filter.Criteria{
			Location:     "a",
			State:        "lagos",
			Status:       domain.StatusForSale,
			MinPrice:     filter.Value(0),
			MaxPrice:     filter.Value(500000000),
			Bedrooms:     filter.Value(0),
			Bathrooms:    filter.Any(),
			PropertyType: domain.TypeVilla,
			Amenities:    []domain.Amenity{domain.AmenityPool},
		}},
		{"disjoint", filter.Criteria{PropertyType: domain.TypeLand, Bedrooms: filter.Value(1)}},
	}
}

// Expected returns the IDs the in-memory matcher selects for c, newest first.
func Expected(c filter.Criteria) []string {
	return IDs(filter.Apply(Listings(), c, filter.SortNewest))
}

// IDs extracts property IDs in order.
func IDs(props []domain.Property) []string {
	out := make([]string, len(props))
	for i := range props {
		out[i] = props[i].ID
	}
	return out
}
