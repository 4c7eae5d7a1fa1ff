package redis

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
	"github.com/estatehub/listing-api/internal/core/ports"
)

const (
	defaultCacheTTL = time.Minute
	generationKey   = "search:gen"
)

// SearchCache is a read-through cache in front of a PropertyRepository. Search
// and featured results are cached per query; any write bumps a generation
// counter that is part of every key, so stale pages are never served after a
// change and simply expire.
//
// Redis failures are logged and the call falls through to the wrapped
// repository.
type SearchCache struct {
	ports.PropertyRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSearchCache(inner ports.PropertyRepository, client *Client, ttl time.Duration, log zerolog.Logger) *SearchCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SearchCache{PropertyRepository: inner, client: client.rdb, ttl: ttl, log: log}
}

func (c *SearchCache) FindAll(ctx context.Context, q filter.Query) (filter.Result, error) {
	gen := c.generation(ctx)
	key := searchKey(gen, q)

	var res filter.Result
	if c.get(ctx, key, &res) {
		return res, nil
	}
	res, err := c.PropertyRepository.FindAll(ctx, q)
	if err != nil {
		return filter.Result{}, err
	}
	c.set(ctx, key, res)
	return res, nil
}

func (c *SearchCache) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	key := "featured:" + c.generation(ctx) + ":" + strconv.Itoa(limit)

	var items []domain.Property
	if c.get(ctx, key, &items) {
		return items, nil
	}
	items, err := c.PropertyRepository.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, items)
	return items, nil
}

func (c *SearchCache) Create(ctx context.Context, p *domain.Property) error {
	if err := c.PropertyRepository.Create(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *SearchCache) Update(ctx context.Context, p *domain.Property) error {
	if err := c.PropertyRepository.Update(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *SearchCache) Delete(ctx context.Context, id string) error {
	if err := c.PropertyRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

// Invalidate retires every cached search.
func (c *SearchCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("search cache invalidation failed")
	}
}

// generation returns the current key generation; an unreadable counter yields
// a value that never matches a stored key.
func (c *SearchCache) generation(ctx context.Context) string {
	gen, err := c.client.Get(ctx, generationKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0"
	case err != nil:
		c.log.Warn().Err(err).Msg("search cache generation unavailable")
		return "x" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return gen
}

func (c *SearchCache) get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("search cache read failed")
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("search cache entry corrupt")
		return false
	}
	return true
}

func (c *SearchCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("search cache write failed")
	}
}

// searchKey hashes the canonical query string form of q. url.Values encodes
// keys in sorted order, so equal queries share a key.
func searchKey(gen string, q filter.Query) string {
	v := q.Criteria.Values()
	v.Set(filter.KeySort, string(q.Sort))
	v.Set(filter.KeyPage, strconv.Itoa(q.Page.Number))
	v.Set(filter.KeyLimit, strconv.Itoa(q.Page.Limit))

	sum := md5.Sum([]byte(v.Encode()))
	return "search:" + gen + ":" + hex.EncodeToString(sum[:])
}
