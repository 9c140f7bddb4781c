package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Region is a named key space inside a Cache.
// Keys are stored as "<name>:<key>", so a whole region can be dropped with one pattern delete.
type Region struct {
	name  string
	cache Cache
	ttl   time.Duration
}

func NewRegion(c Cache, name string, ttl time.Duration) *Region {
	return &Region{
		name:  name,
		cache: c,
		ttl:   ttl,
	}
}

func (r *Region) Name() string {
	return r.name
}

func (r *Region) key(k string) string {
	return r.name + ":" + k
}

// GetOrLoad returns the cached value for key or calls load and caches its result.
// Cache failures are logged and never fail the call; load errors are returned as is and not cached.
func GetOrLoad[T any](ctx context.Context, r *Region, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if r != nil && r.cache != nil {
		found, err := r.cache.Get(ctx, r.key(key), &cached)
		if err == nil && found {
			return cached, nil
		}
		if err != nil {
			log.Warn().Err(err).Str("region", r.name).Str("key", key).Msg("cache read failed")
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if r != nil && r.cache != nil {
		if err := r.cache.Set(ctx, r.key(key), value, r.ttl); err != nil {
			log.Warn().Err(err).Str("region", r.name).Str("key", key).Msg("cache write failed")
		}
	}

	return value, nil
}

// Invalidate evicts the given keys from the region.
func (r *Region) Invalidate(ctx context.Context, keys ...string) {
	if r == nil || r.cache == nil || len(keys) == 0 {
		return
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.key(k))
	}

	if err := r.cache.Delete(ctx, full...); err != nil {
		log.Warn().Err(err).Str("region", r.name).Strs("keys", keys).Msg("cache evict failed")
	}
}

// InvalidateAll evicts every key of the region.
func (r *Region) InvalidateAll(ctx context.Context) {
	if r == nil || r.cache == nil {
		return
	}

	if err := r.cache.DeletePattern(ctx, r.name+":*"); err != nil {
		log.Warn().Err(err).Str("region", r.name).Msg("cache clear failed")
	}
}
