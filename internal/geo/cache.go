// README: Read-through Redis cache in front of a Geocoder.
package geo

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "geo:q:"
	// Place names are stable; a day keeps us well under the public
	// endpoint's rate limits across re-plans.
	cacheTTL = 24 * time.Hour
)

// CachedGeocoder decorates a Geocoder with a Redis read-through cache.
// Cache failures degrade to a direct lookup; they are never surfaced.
type CachedGeocoder struct {
	next  Geocoder
	redis *redis.Client
}

// NewCachedGeocoder wraps next with the given Redis client.
func NewCachedGeocoder(next Geocoder, rdb *redis.Client) *CachedGeocoder {
	return &CachedGeocoder{next: next, redis: rdb}
}

func cacheKey(query string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// Geocode implements Geocoder.
func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (*Place, error) {
	key := cacheKey(query)

	if raw, err := c.redis.Get(ctx, key).Result(); err == nil {
		var p Place
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return &p, nil
		}
		// Corrupt entry: fall through and overwrite below.
	} else if err != redis.Nil {
		log.Printf("geo cache: get %q: %v", key, err)
	}

	p, err := c.next.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(p); err == nil {
		if err := c.redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			log.Printf("geo cache: set %q: %v", key, err)
		}
	}
	return p, nil
}
