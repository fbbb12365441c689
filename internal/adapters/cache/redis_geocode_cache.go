package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	forwardPrefix = "geocode:fwd:"
	reversePrefix = "geocode:rev:"
)

// RedisGeocodeCache is a Redis-backed cache for forward and reverse geocode results.
// Entries expire after TTL; a zero TTL keeps them indefinitely.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type cachedPosition struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func forwardKey(query string) string {
	return forwardPrefix + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Reverse keys are rounded to ~0.1 m so float noise from map clicks still hits.
func reverseKey(pos domain.Position) string {
	return fmt.Sprintf("%s%.6f,%.6f", reversePrefix, pos.Lat, pos.Lon)
}

// Fetch the cached position for a query.
func (c *RedisGeocodeCache) GetForward(
	ctx context.Context,
	query string,
) (_ *domain.Position, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.GetForward")(&err)

	if c.Client == nil {
		return nil, false, errors.New("geocode cache: client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, false, errors.New("get geocode cache: query must not be empty")
	}

	raw, err := c.Client.Get(ctx, forwardKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var cp cachedPosition
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, false, fmt.Errorf("get geocode cache: decode %q: %w", query, err)
	}

	pos := domain.Position{Lat: cp.Lat, Lon: cp.Lon}
	return &pos, true, nil
}

// Store query -> position.
func (c *RedisGeocodeCache) PutForward(ctx context.Context, query string, pos domain.Position) error {
	if c.Client == nil {
		return errors.New("geocode cache: client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return errors.New("insert geocode cache: empty query key")
	}

	raw, err := json.Marshal(cachedPosition{Lat: pos.Lat, Lon: pos.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, forwardKey(query), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache query=%q: %w", query, err)
	}
	return nil
}

// Fetch the cached address for a position.
func (c *RedisGeocodeCache) GetReverse(
	ctx context.Context,
	pos domain.Position,
) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.GetReverse")(&err)

	if c.Client == nil {
		return "", false, errors.New("geocode cache: client is nil")
	}

	addr, err := c.Client.Get(ctx, reverseKey(pos)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get reverse geocode cache: %w", err)
	}
	return addr, true, nil
}

// Store position -> address.
func (c *RedisGeocodeCache) PutReverse(ctx context.Context, pos domain.Position, address string) error {
	if c.Client == nil {
		return errors.New("geocode cache: client is nil")
	}
	if strings.TrimSpace(address) == "" {
		return errors.New("insert reverse geocode cache: empty address")
	}

	if err := c.Client.Set(ctx, reverseKey(pos), address, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert reverse geocode cache coord=%s: %w", pos, err)
	}
	return nil
}
