// File: middleware/rate_limiter.go
package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"reservekit/config"
	"reservekit/utils"
)

// rateLimiterStore keeps in-process limiters as a fallback when redis is
// unreachable; keys are provider ids or client IPs.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*rate.Limiter),
}

func (s *rateLimiterStore) getLimiter(key string, perMin int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if perMin < 1 {
		perMin = 1
	}
	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware enforces a fixed per-minute window in redis so the
// limit holds across instances. Authenticated requests are keyed by provider
// id with the provider's own limit; anonymous ones by client IP with the
// global default.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, limit := limiterIdentity(c)
		if !applyWindow(c, key, limit) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}

// applyWindow counts the request against the key's current one-minute window
// and stamps the X-RateLimit-* headers; every caller path gets headers, the
// redis-down fallback included. Returns whether the request is within limit.
func applyWindow(c *gin.Context, key string, limit int) bool {
	logger := utils.GetLogger()
	now := time.Now()
	windowStart := now.Truncate(time.Minute)
	reset := windowStart.Add(time.Minute)
	redisKey := fmt.Sprintf("rate:%s:%d", key, windowStart.Unix())

	ctx := c.Request.Context()
	rateClient := utils.GetRateLimitClient()
	count, err := rateClient.Incr(ctx, redisKey).Result()
	if err != nil {
		// Redis down: degrade to the in-process limiter rather than
		// failing open completely or rejecting everything.
		logger.Warn("rate limit counter unavailable, using local limiter", zap.Error(err))
		limiter := limiterStore.getLimiter(key, limit)
		allowed := limiter.Allow()
		remaining := int64(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		setRateHeaders(c, limit, remaining, reset)
		return allowed
	}
	if count == 1 {
		if err := rateClient.Expire(ctx, redisKey, time.Minute+5*time.Second).Err(); err != nil {
			logger.Warn("failed to set rate window expiry", zap.Error(err))
		}
	}

	remaining := int64(limit) - count
	if remaining < 0 {
		remaining = 0
	}
	setRateHeaders(c, limit, remaining, reset)

	if count > int64(limit) {
		logger.Warn("rate limit exceeded", zap.String("key", key), zap.Int("limit", limit))
		return false
	}
	return true
}

func setRateHeaders(c *gin.Context, limit int, remaining int64, reset time.Time) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}

func limiterIdentity(c *gin.Context) (string, int) {
	limit := config.AppConfig.MaxRequestsPerMin
	if provider := ProviderFromContext(c); provider != nil {
		if provider.RateLimitPerMin > 0 {
			limit = provider.RateLimitPerMin
		}
		return provider.ID, limit
	}
	return "ip:" + getClientIP(c), limit
}

func rejectRateLimited(c *gin.Context) {
	reset := time.Now().Truncate(time.Minute).Add(time.Minute)
	retryAfter := int(time.Until(reset).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": gin.H{
			"code":    utils.CodeRateLimited,
			"message": "rate limit exceeded, retry later",
		},
	})
}
