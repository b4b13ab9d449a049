package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"entreprenapp/infrastructure/cache"
	"entreprenapp/pkg/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Counter increments a windowed per-key counter and returns its new value.
// The window TTL only applies when the key is created.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// MemCounter backs the limiter when Redis is not configured.
type MemCounter struct {
	cache *cache.MemCache
}

func NewMemCounter(c *cache.MemCache) *MemCounter {
	return &MemCounter{cache: c}
}

func (c *MemCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	return c.cache.IncrementWithTTL(key, 1, window)
}

// RateLimit rejects clients exceeding limit requests per fixed window, keyed
// by client IP and bucket name. Counter failures fail open: limiting is a
// guard, not a correctness requirement.
func RateLimit(counter Counter, bucket string, limit int, window time.Duration, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("ratelimit:%s:%s", bucket, clientIP(r))

			count, err := counter.Incr(r.Context(), key, window)
			if err != nil {
				log.Warnw("rate limit counter error", "bucket", bucket, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				writeError(w, r, log, apperror.New(http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, slow down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
