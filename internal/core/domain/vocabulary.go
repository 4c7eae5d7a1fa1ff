package domain

import (
	"slices"
	"strings"
)

// The vocabularies below are closed. To add a value, declare the constant, add it
// to the matching registry and list any display labels or spellings as aliases.

// ListingStatus is the listing intent of a property.
type ListingStatus string

const (
	StatusForSale ListingStatus = "sale"
	StatusForRent ListingStatus = "rent"
)

var listingStatusAliases = map[string]ListingStatus{
	"sale":     StatusForSale,
	"for sale": StatusForSale,
	"for_sale": StatusForSale,
	"buy":      StatusForSale,
	"rent":     StatusForRent,
	"for rent": StatusForRent,
	"for_rent": StatusForRent,
	"lease":    StatusForRent,
}

func (s ListingStatus) Valid() bool {
	return s == StatusForSale || s == StatusForRent
}

// ParseListingStatus maps any accepted spelling to the canonical status.
func ParseListingStatus(s string) (ListingStatus, bool) {
	st, ok := listingStatusAliases[normalizeTerm(s)]
	return st, ok
}

// PropertyType is the category of a listing.
type PropertyType string

const (
	TypeHouse      PropertyType = "house"
	TypeApartment  PropertyType = "apartment"
	TypeCondo      PropertyType = "condo"
	TypeTownhouse  PropertyType = "townhouse"
	TypeVilla      PropertyType = "villa"
	TypeDuplex     PropertyType = "duplex"
	TypeBungalow   PropertyType = "bungalow"
	TypeFlat       PropertyType = "flat"
	TypeStudio     PropertyType = "studio"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
	TypeOffice     PropertyType = "office"
)

var propertyTypes = []PropertyType{
	TypeHouse, TypeApartment, TypeCondo, TypeTownhouse, TypeVilla, TypeDuplex,
	TypeBungalow, TypeFlat, TypeStudio, TypeLand, TypeCommercial, TypeOffice,
}

var propertyTypeAliases = map[string]PropertyType{
	"commercial property": TypeCommercial,
	"office space":        TypeOffice,
	"detached house":      TypeHouse,
	"semi-detached house": TypeHouse,
	"terrace":             TypeTownhouse,
	"terraced house":      TypeTownhouse,
}

// PropertyTypes returns the registered property types in declaration order.
func PropertyTypes() []PropertyType {
	return slices.Clone(propertyTypes)
}

func (t PropertyType) Valid() bool {
	return slices.Contains(propertyTypes, t)
}

// HasRooms reports whether bedroom and bathroom counts are meaningful for t.
func (t PropertyType) HasRooms() bool {
	switch t {
	case TypeLand, TypeCommercial, TypeOffice:
		return false
	}
	return true
}

// ParsePropertyType accepts canonical values, their capitalised forms and aliases.
func ParsePropertyType(s string) (PropertyType, bool) {
	term := normalizeTerm(s)
	if t := PropertyType(term); t.Valid() {
		return t, true
	}
	t, ok := propertyTypeAliases[term]
	return t, ok
}

// Amenity is a feature tag a listing can carry.
type Amenity string

const (
	AmenityPool            Amenity = "pool"
	AmenityGym             Amenity = "gym"
	AmenityParking         Amenity = "parking"
	AmenitySecurity        Amenity = "security"
	AmenityBalcony         Amenity = "balcony"
	AmenityGarden          Amenity = "garden"
	AmenityAirConditioning Amenity = "air_conditioning"
	AmenityFurnished       Amenity = "furnished"
	AmenityElevator        Amenity = "elevator"
	AmenityCCTV            Amenity = "cctv"
	AmenityBackupGenerator Amenity = "backup_generator"
	AmenityBorehole        Amenity = "borehole"
	AmenityServiced        Amenity = "serviced"
	AmenityWaterfront      Amenity = "waterfront"
	AmenityGatedEstate     Amenity = "gated_estate"
)

var amenities = []Amenity{
	AmenityPool, AmenityGym, AmenityParking, AmenitySecurity, AmenityBalcony,
	AmenityGarden, AmenityAirConditioning, AmenityFurnished, AmenityElevator,
	AmenityCCTV, AmenityBackupGenerator, AmenityBorehole, AmenityServiced,
	AmenityWaterfront, AmenityGatedEstate,
}

var amenityAliases = map[string]Amenity{
	"swimming pool":    AmenityPool,
	"swimming_pool":    AmenityPool,
	"air conditioning": AmenityAirConditioning,
	"ac":               AmenityAirConditioning,
	"backup generator": AmenityBackupGenerator,
	"generator":        AmenityBackupGenerator,
	"gated estate":     AmenityGatedEstate,
	"lift":             AmenityElevator,
}

// Amenities returns the registered amenity tags in declaration order.
func Amenities() []Amenity {
	return slices.Clone(amenities)
}

func (a Amenity) Valid() bool {
	return slices.Contains(amenities, a)
}

// ParseAmenity accepts canonical tags and display labels such as "Swimming Pool".
func ParseAmenity(s string) (Amenity, bool) {
	term := normalizeTerm(s)
	if a := Amenity(term); a.Valid() {
		return a, true
	}
	if a, ok := amenityAliases[term]; ok {
		return a, true
	}
	a := Amenity(strings.ReplaceAll(term, " ", "_"))
	return a, a.Valid()
}

// UniqueAmenities returns tags with duplicates removed, keeping first occurrence order.
func UniqueAmenities(in []Amenity) []Amenity {
	if in == nil {
		return []Amenity{}
	}
	seen := make(map[Amenity]struct{}, len(in))
	out := make([]Amenity, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Social login providers.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderApple    = "apple"
)

// ParseProvider maps a provider name in any casing to its canonical form.
func ParseProvider(s string) (string, bool) {
	switch p := normalizeTerm(s); p {
	case ProviderGoogle, ProviderFacebook, ProviderApple:
		return p, true
	}
	return "", false
}

func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
