package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leogretz2/bp-planner1/internal/modules/serializer"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter counts requests per client in fixed Redis windows so the
// limit holds across every replica sharing the same Redis.
type RateLimiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRateLimiter(rdb redis.Cmdable, requests, windowSeconds int) *RateLimiter {
	if requests <= 0 {
		requests = 300
	}
	if windowSeconds <= 0 {
		windowSeconds = 60
	}
	return &RateLimiter{
		rdb:    rdb,
		limit:  requests,
		window: time.Duration(windowSeconds) * time.Second,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, reset time.Time, err error) {
	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	reset = time.Unix(0, (slot+1)*int64(l.window))
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err = l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, 0, reset, err
	}

	count := int(incr.Val())
	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, reset, nil
}

// RateLimit limits by client IP. A nil limiter disables limiting, and a
// Redis failure lets the request through.
func RateLimit(l *RateLimiter, log *zap.Logger) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		allowed, remaining, reset, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retry := int64(reset.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, serializer.RateLimitErr(""))
			return
		}
		c.Next()
	}
}
