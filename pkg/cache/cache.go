package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLSubjects = 2 * time.Minute  // published subject list (refreshed on moderation)
	TTLSubject  = 10 * time.Minute // single subject detail
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixSubjects = "subjects:"
	PrefixSubject  = "subject:"
)

// Service is a Redis-backed cache for published subject data.
// All methods degrade to no-ops when Redis is unavailable so the API
// keeps serving from the database.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Published subject list, keyed by the department/semester/search filter set
	GetSubjectList(ctx context.Context, filterKey string) ([]byte, error)
	SetSubjectList(ctx context.Context, filterKey string, data interface{}) error
	InvalidateSubjectLists(ctx context.Context) error

	// Single subject by slug
	GetSubject(ctx context.Context, slug string) ([]byte, error)
	SetSubject(ctx context.Context, slug string, data interface{}) error
	InvalidateSubject(ctx context.Context, slug string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service. A nil client is allowed and
// produces a cache that never hits.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) subjectsKey(filterKey string) string {
	if filterKey == "" {
		return PrefixSubjects + "all"
	}
	return PrefixSubjects + filterKey
}

func (c *redisCache) GetSubjectList(ctx context.Context, filterKey string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.subjectsKey(filterKey)).Bytes()
}

func (c *redisCache) SetSubjectList(ctx context.Context, filterKey string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.subjectsKey(filterKey), jsonData, TTLSubjects).Err()
}

func (c *redisCache) InvalidateSubjectLists(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixSubjects+"*")
}

func (c *redisCache) subjectKey(slug string) string {
	return PrefixSubject + slug
}

func (c *redisCache) GetSubject(ctx context.Context, slug string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.subjectKey(slug)).Bytes()
}

func (c *redisCache) SetSubject(ctx context.Context, slug string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.subjectKey(slug), jsonData, TTLSubject).Err()
}

func (c *redisCache) InvalidateSubject(ctx context.Context, slug string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.subjectKey(slug)).Err()
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
