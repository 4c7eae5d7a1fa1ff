package filter

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/estatehub/listing-api/internal/core/domain"
)

const (
	KeySort  = "sort"
	KeyPage  = "page"
	KeyLimit = "limit"

	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps (MaxPage-1)*MaxLimit within an int.
	MaxPage = math.MaxInt / MaxLimit
)

// Sort selects the result ordering. The zero value is SortNewest.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

var errUnknownSort = errors.New("must be one of newest, oldest, price_asc, price_desc")

// ParseSort accepts the sort names above; an empty value selects SortNewest.
func ParseSort(raw string) (Sort, error) {
	switch s := Sort(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc:
		return s, nil
	}
	return SortNewest, errUnknownSort
}

// Less orders a before b. Ties on the sort key fall back to the ID so the order
// is total and stable across backends.
func (s Sort) Less(a, b *domain.Property) bool {
	switch s {
	case SortOldest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortPriceAsc:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case SortPriceDesc:
		if a.Price != b.Price {
			return a.Price > b.Price
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

// Page is a 1-based page number and a page size. The zero value means
// "everything", which is what in-process callers use.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of items skipped before the page starts. It saturates
// at math.MaxInt instead of wrapping.
func (p Page) Offset() int {
	if p.Limit <= 0 || p.Number <= 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// Window returns the [start, end) slice bounds of the page within n items.
func (p Page) Window(n int) (int, int) {
	if p.Limit <= 0 {
		return 0, n
	}
	start := min(p.Offset(), n)
	end := start + min(p.Limit, n-start)
	return start, end
}

// ParsePage reads page and limit. Missing values default to page 1 and
// DefaultLimit; limit is capped at MaxLimit. Problems are returned per key.
func ParsePage(v url.Values) (Page, map[string]string) {
	p := Page{Number: 1, Limit: DefaultLimit}
	errs := map[string]string{}

	if raw := strings.TrimSpace(v.Get(KeyPage)); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n < 1:
			errs[KeyPage] = "must be a positive whole number"
		case n > MaxPage:
			errs[KeyPage] = "is too large"
		default:
			p.Number = n
		}
	}
	if raw := strings.TrimSpace(v.Get(KeyLimit)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs[KeyLimit] = "must be a positive whole number"
		} else {
			p.Limit = min(n, MaxLimit)
		}
	}
	return p, errs
}

// Result is one page of matches together with the total match count.
type Result struct {
	Items      []domain.Property
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewResult wraps a page of items with paging metadata.
func NewResult(items []domain.Property, total int, p Page) Result {
	r := Result{Items: items, Total: total, Page: max(p.Number, 1), Limit: p.Limit}
	if items == nil {
		r.Items = []domain.Property{}
	}
	switch {
	case p.Limit > 0:
		r.TotalPages = (total + p.Limit - 1) / p.Limit
	case total > 0:
		r.TotalPages = 1
	}
	return r
}
