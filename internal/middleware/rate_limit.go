package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
)

// AttemptCounter counts hits on key inside a fixed window.
type AttemptCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is an AttemptCounter backed by INCR, with EXPIRE set on the first hit.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := r.prefix + key

	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, fmt.Errorf("rate limit counter: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return 0, fmt.Errorf("rate limit window: %w", err)
		}
	}
	return count, nil
}

// RateLimit rejects a client IP with 429 after limit requests inside window.
// limit <= 0 disables the limit. Counter failures let the request through.
func RateLimit(counter AttemptCounter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		count, err := counter.Hit(c.Request.Context(), c.FullPath()+"|"+c.ClientIP(), window)
		if err != nil {
			logger.LogError("rate_limit", err, map[string]interface{}{"ip": c.ClientIP()})
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			apierrors.TooManyRequests(c, "Too many attempts, try again later")
			return
		}

		c.Next()
	}
}
