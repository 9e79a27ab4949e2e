package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is long enough to dedupe rapid repeated submissions and
// short enough not to serve stale trip dates.
const DefaultCacheTTL = 5 * time.Second

// Cache holds recently generated itineraries for a short time-to-live.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Itinerary, bool)
	Set(ctx context.Context, key string, it *Itinerary)
}

// RequestKey fingerprints a request. Two requests with the same destination,
// preferences, resolved duration, and mode map to the same key.
func RequestKey(req TravelRequest) string {
	fingerprint := struct {
		Destination Destination     `json:"destination"`
		Preferences TripPreferences `json:"preferences"`
		Duration    int             `json:"duration"`
		Mode        Mode            `json:"mode"`
	}{req.Destination, req.Preferences, req.ActualDuration(), req.Mode}

	b, err := json.Marshal(fingerprint)
	if err != nil {
		// Marshal of plain structs cannot fail; keep the signature honest.
		return "itinerary:invalid"
	}
	sum := sha256.Sum256(b)
	return "itinerary:" + hex.EncodeToString(sum[:])
}

// MemoryCache is the in-process backend, suitable for a single instance.
type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{c: gocache.New(ttl, ttl)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*Itinerary, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	it, ok := v.(*Itinerary)
	return it, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, it *Itinerary) {
	m.c.SetDefault(key, it)
}

// RedisCache shares results between instances. Values are stored as JSON with
// the TTL applied on write.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*Itinerary, bool) {
	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var it Itinerary
	if err := json.Unmarshal(b, &it); err != nil {
		return nil, false
	}
	return &it, true
}

func (r *RedisCache) Set(ctx context.Context, key string, it *Itinerary) {
	b, err := json.Marshal(it)
	if err != nil {
		return
	}
	// Best effort: a cache write failure must not fail the generation.
	_ = r.rdb.Set(ctx, key, b, r.ttl).Err()
}
