package handler

import (
	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
)

// propertyRequest is the body of both create and full-replace update.
// Status, property type and amenities accept display spellings ("For Sale",
// "Swimming Pool") and are mapped to canonical values by the service.
type propertyRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	Price        float64  `json:"price" validate:"gte=0"`
	Location     string   `json:"location" validate:"required,max=300"`
	State        string   `json:"state" validate:"max=100"`
	Area         string   `json:"area" validate:"max=100"`
	Status       string   `json:"status" validate:"required"`
	PropertyType string   `json:"propertyType" validate:"required"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	FloorArea    float64  `json:"floorArea" validate:"gt=0"`
	Amenities    []string `json:"amenities"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
	IsFeatured   bool     `json:"isFeatured"`
}

func (r propertyRequest) toInput() ports.PropertyInput {
	return ports.PropertyInput{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Location:     r.Location,
		State:        r.State,
		Area:         r.Area,
		Status:       r.Status,
		PropertyType: r.PropertyType,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		FloorArea:    r.FloorArea,
		Amenities:    r.Amenities,
		ImageURL:     r.ImageURL,
		IsFeatured:   r.IsFeatured,
	}
}

type searchResponse struct {
	Items      []domain.Property `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

func newSearchResponse(r filter.Result) searchResponse {
	return searchResponse{
		Items:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}

// listResponse wraps fixed-size collections such as featured or similar listings.
type listResponse struct {
	Items []domain.Property `json:"items"`
}

func newListResponse(items []domain.Property) listResponse {
	if items == nil {
		items = []domain.Property{}
	}
	return listResponse{Items: items}
}
