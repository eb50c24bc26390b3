package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces per-provider request quotas using Redis counters.
// A limit of zero disables the corresponding window.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a rate limiter backed by the given client.
func NewRateLimiter(c *redis.Client) *RateLimiter {
	return &RateLimiter{client: c}
}

// Allow increments the per-minute and per-day counters for the provider
// and reports whether the request stays within both limits. Counters are
// created with a TTL matching their window on first use.
func (r *RateLimiter) Allow(ctx context.Context, providerSlug string, perMinute, perDay int) (bool, error) {
	now := time.Now().UTC()

	if perMinute > 0 {
		key := fmt.Sprintf("ratelimit:%s:minute:%s", providerSlug, now.Format("200601021504"))
		ok, err := r.incrWithin(ctx, key, perMinute, time.Minute)
		if err != nil || !ok {
			return ok, err
		}
	}

	if perDay > 0 {
		key := fmt.Sprintf("ratelimit:%s:day:%s", providerSlug, now.Format("20060102"))
		ok, err := r.incrWithin(ctx, key, perDay, 24*time.Hour)
		if err != nil || !ok {
			return ok, err
		}
	}

	return true, nil
}

func (r *RateLimiter) incrWithin(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	if count == 1 {
		// TTL is best effort; a key without one expires with the next window key.
		_ = r.client.Expire(ctx, key, window).Err()
	}
	return count <= int64(limit), nil
}
