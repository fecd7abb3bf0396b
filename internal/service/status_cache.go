package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pantau-go-api/internal/dto"
)

const defaultStatusCacheTTL = 30 * time.Second

// StatusCache is a TTL-bounded redis cache of status lookup responses.
// Writers (check-in, assign, complete) invalidate the entry for the student
// they touched. A nil *StatusCache or nil client disables caching, and redis
// errors degrade to the backing store silently.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStatusCache builds a status cache. A nil client yields a disabled cache.
func NewStatusCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *StatusCache {
	if ttl <= 0 {
		ttl = defaultStatusCacheTTL
	}

	return &StatusCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "status_cache").Logger(),
	}
}

func statusCacheKey(studentID string) string {
	return "status:student:" + studentID
}

// Get returns the cached response and whether it was present.
func (c *StatusCache) Get(ctx context.Context, studentID string) (dto.StudentStatusResponse, bool) {
	if c == nil || c.client == nil {
		return dto.StudentStatusResponse{}, false
	}

	cached, err := c.client.Get(ctx, statusCacheKey(studentID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("failed to read status cache")
		}
		return dto.StudentStatusResponse{}, false
	}

	var response dto.StudentStatusResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.StudentStatusResponse{}, false
	}

	return response, true
}

// Set stores the response under the student's key for the configured TTL.
func (c *StatusCache) Set(ctx context.Context, studentID string, response dto.StudentStatusResponse) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, statusCacheKey(studentID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store status cache")
	}
}

// Invalidate drops the cached response for the student.
func (c *StatusCache) Invalidate(ctx context.Context, studentID string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, statusCacheKey(studentID)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate status cache")
	}
}
