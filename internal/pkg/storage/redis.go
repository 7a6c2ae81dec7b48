package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/malingi/accabot/internal/pkg/models"
)

// Ensure RedisMatchCache implements MatchCache
var _ MatchCache = (*RedisMatchCache)(nil)

// RedisMatchCache caches one scrape result per source so repeated same-day
// runs (three scheduled sends) reuse it instead of hitting the site again.
type RedisMatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMatchCache connects to Redis and verifies the connection.
func NewRedisMatchCache(addr, password string, db int, ttl time.Duration) (*RedisMatchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisMatchCache{client: client, ttl: ttl}, nil
}

func (r *RedisMatchCache) key(source string) string {
	return fmt.Sprintf("matches:%s", source)
}

// StoreMatches caches matches from one source with the configured TTL.
func (r *RedisMatchCache) StoreMatches(ctx context.Context, source string, matches []models.Match) error {
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	return r.client.Set(ctx, r.key(source), data, r.ttl).Err()
}

// GetMatches returns cached matches for a source, nil on a cold cache.
func (r *RedisMatchCache) GetMatches(ctx context.Context, source string) ([]models.Match, error) {
	data, err := r.client.Get(ctx, r.key(source)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached matches: %w", err)
	}
	var matches []models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached matches: %w", err)
	}
	return matches, nil
}

// Close closes the Redis connection.
func (r *RedisMatchCache) Close() error {
	return r.client.Close()
}
