package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bookit-platform/internal/models"

	"github.com/go-redis/redis/v8"
)

const experienceListPrefix = "bookit:experiences:list:"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisExperienceCache caches experience listings in Redis. Slot inventory
// is never cached so availability is always read from the database.
type RedisExperienceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a client and checks the server is reachable
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	addr := opts.Addr
	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		if opts.Password != "" {
			parsed.Password = opts.Password
		}
		client = redis.NewClient(parsed)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("Redis cache connected at %s", client.Options().Addr)
	return client, nil
}

// NewRedisExperienceCache wraps client; a non-positive ttl defaults to five minutes
func NewRedisExperienceCache(client *redis.Client, ttl time.Duration) *RedisExperienceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisExperienceCache{client: client, ttl: ttl}
}

// GetList returns the cached listing for term. ok is false on a miss.
func (c *RedisExperienceCache) GetList(ctx context.Context, term string) ([]*models.Experience, bool, error) {
	data, err := c.client.Get(ctx, listKey(term)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read experience list: %w", err)
	}

	var experiences []*models.Experience
	if err := json.Unmarshal(data, &experiences); err != nil {
		// A bad entry is treated as a miss and overwritten on the next set
		return nil, false, nil
	}
	if experiences == nil {
		experiences = []*models.Experience{}
	}
	return experiences, true, nil
}

// SetList stores the listing for term
func (c *RedisExperienceCache) SetList(ctx context.Context, term string, experiences []*models.Experience) error {
	data, err := json.Marshal(experiences)
	if err != nil {
		return fmt.Errorf("failed to encode experience list: %w", err)
	}
	if err := c.client.Set(ctx, listKey(term), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write experience list: %w", err)
	}
	return nil
}

// Invalidate drops every cached listing, used after catalog writes
func (c *RedisExperienceCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, experienceListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan experience keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// listKey is the cache key for a sanitized search term
func listKey(term string) string {
	return experienceListPrefix + strings.ToLower(strings.TrimSpace(term))
}
