package redis

import (
	"context"
	"fmt"
	"time"

	"kledje/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore is a fixed-window request counter shared by every API
// instance. It satisfies echo's middleware.RateLimiterStore.
type RateLimitStore struct {
	client *redis.Client
	window time.Duration
	limit  int
	now    func() time.Time
}

func NewRateLimitStore(client *redis.Client, window time.Duration, limit int) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow counts one request for identifier in the current window. Redis
// failures let the request through so an outage does not take the API down.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := s.key(identifier)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Rate limit store unavailable", "identifier", identifier, "error", err)
		return true, nil
	}

	return incr.Val() <= int64(s.limit), nil
}

func (s *RateLimitStore) key(identifier string) string {
	bucket := s.now().UnixMilli() / s.window.Milliseconds()
	return fmt.Sprintf("ratelimit:%s:%d", identifier, bucket)
}
