// Package listingclient calls the listing API over HTTP using the same
// criteria type the server parses, so both sides share one vocabulary.
package listingclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound is returned by Get for an unknown property.
var ErrNotFound = errors.New("listingclient: not found")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("listing api: %d %s", e.Status, e.Message)
}

type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithToken sends the bearer token on every request, which makes reads
// report IsFavorite for that user.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// New returns a client for the API served at baseURL (scheme and host, with
// or without the /api prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("listingclient: base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("listingclient: base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/api") {
		u.Path += "/api"
	}

	c := &Client{base: u, http: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchOptions selects ordering and paging. Zero values use the server defaults.
type SearchOptions struct {
	Sort  filter.Sort
	Page  int
	Limit int
}

// Page is one page of search results.
type Page struct {
	Items      []domain.Property `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// Search runs criteria against GET /properties.
func (c *Client) Search(ctx context.Context, criteria filter.Criteria, opts SearchOptions) (*Page, error) {
	q := criteria.Values()
	if opts.Sort != "" {
		q.Set(filter.KeySort, string(opts.Sort))
	}
	if opts.Page > 0 {
		q.Set(filter.KeyPage, strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set(filter.KeyLimit, strconv.Itoa(opts.Limit))
	}

	var page Page
	if err := c.get(ctx, "/properties", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one property.
func (c *Client) Get(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := c.get(ctx, "/properties/"+url.PathEscape(id), nil, &p); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.base
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("listingclient: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Fields = body.Fields
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("listingclient: decode: %w", err)
	}
	return nil
}
