package listingclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

var listings = []domain.Property{
	{ID: "a", Title: "Lekki flat", Location: "Lekki, Lagos", State: "Lagos", Status: domain.StatusForRent,
		PropertyType: domain.TypeFlat, Price: 3000000, Bedrooms: 3, Bathrooms: 2, FloorArea: 120,
		Amenities: []domain.Amenity{domain.AmenityPool}, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	{ID: "b", Title: "Abuja duplex", Location: "Maitama, Abuja", State: "FCT", Status: domain.StatusForSale,
		PropertyType: domain.TypeDuplex, Price: 400000000, Bedrooms: 5, Bathrooms: 5, FloorArea: 500,
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	{ID: "c", Title: "Ikeja flat", Location: "Ikeja, Lagos", State: "Lagos", Status: domain.StatusForRent,
		PropertyType: domain.TypeFlat, Price: 1500000, Bedrooms: 2, Bathrooms: 1, FloorArea: 80,
		Amenities: []domain.Amenity{domain.AmenityPool, domain.AmenityGym}, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
}

// newServer parses requests with the same parser as the API and answers from listings.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/properties", func(w http.ResponseWriter, r *http.Request) {
		q, err := filter.ParseRequest(r.URL.Query())
		if err != nil {
			var ve *filter.ValidationError
			errors.As(err, &ve)
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid search criteria", "fields": ve.Fields})
			return
		}
		res := filter.Run(listings, q)
		_ = json.NewEncoder(w).Encode(Page{Items: res.Items, Total: res.Total, Page: res.Page, Limit: res.Limit, TotalPages: res.TotalPages})
	})
	mux.HandleFunc("GET /api/properties/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		for _, p := range listings {
			if p.ID == r.PathValue("id") {
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"property not found"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_SameResultAsInProcess(t *testing.T) {
	srv := newServer(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	criteria := filter.Criteria{
		Location:  "lagos",
		Status:    domain.StatusForRent,
		MaxPrice:  filter.Value(5000000),
		Bedrooms:  filter.Value(2),
		Amenities: []domain.Amenity{domain.AmenityPool},
	}
	page, err := client.Search(context.Background(), criteria, SearchOptions{Sort: filter.SortPriceAsc, Limit: 10})
	require.NoError(t, err)

	want := filter.Apply(listings, criteria, filter.SortPriceAsc)
	require.Len(t, page.Items, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, page.Items[i].ID)
	}
	assert.Equal(t, []string{"c", "a"}, []string{page.Items[0].ID, page.Items[1].ID})
	assert.Equal(t, 2, page.Total)
}

func TestSearch_EmptyCriteriaListsAll(t *testing.T) {
	srv := newServer(t)
	client, err := New(srv.URL + "/api/")
	require.NoError(t, err)

	page, err := client.Search(context.Background(), filter.Criteria{}, SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "a", page.Items[0].ID, "newest first by default")
}

func TestSearch_ServerValidationError(t *testing.T) {
	srv := newServer(t)
	client, err := New(srv.URL)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), filter.Criteria{MinPrice: filter.Value(-1)}, SearchOptions{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Fields, filter.KeyMinPrice)
}

func TestGet(t *testing.T) {
	srv := newServer(t)
	client, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	p, err := client.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "Abuja duplex", p.Title)

	_, err = client.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8080")
	assert.Error(t, err)
}
