// File: middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservekit/config"
	providerRepo "reservekit/database/repository/provider"
	"reservekit/models"
	"reservekit/utils"
)

const (
	providerContextKey = "provider"
	authCachePrefix    = "auth:key:"
	authCacheTTL       = 5 * time.Minute
)

// APIKeyAuthMiddleware authenticates requests by their Bearer API key. Only
// the sha256 of the key is ever stored or cached; a validated key maps to a
// provider id in redis so the hot path skips mongo.
func APIKeyAuthMiddleware(providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or malformed Authorization header")
			return
		}
		apiKey := strings.TrimPrefix(authHeader, "Bearer ")
		if apiKey == "" {
			abortUnauthorized(c, "missing or malformed Authorization header")
			return
		}

		keyHash := utils.HashAPIKey(apiKey)
		cacheKey := authCachePrefix + keyHash
		ctx := c.Request.Context()

		authCache := utils.GetCacheClient()
		if providerID, err := authCache.Get(ctx, cacheKey).Result(); err == nil && providerID != "" {
			provider, err := providers.GetByID(ctx, providerID)
			if err == nil {
				c.Set(providerContextKey, provider)
				c.Next()
				return
			}
			// Stale cache entry, fall through to the hash lookup.
			if err := authCache.Del(ctx, cacheKey).Err(); err != nil {
				logger.Warn("failed to evict stale auth cache entry", zap.Error(err))
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			logger.Warn("auth cache lookup failed", zap.Error(err))
		}

		provider, err := providers.GetByAPIKeyHash(ctx, keyHash)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				logger.Error("provider lookup by api key failed", zap.Error(err))
			}
			abortUnauthorized(c, "invalid API key")
			return
		}

		if err := authCache.Set(ctx, cacheKey, provider.ID, authCacheTTL).Err(); err != nil {
			logger.Warn("failed to cache validated api key", zap.Error(err))
		}

		c.Set(providerContextKey, provider)
		c.Next()
	}
}

// ProviderFromContext returns the authenticated provider set by the auth
// middleware; handlers behind it may assume the value is present.
func ProviderFromContext(c *gin.Context) *models.Provider {
	v, ok := c.Get(providerContextKey)
	if !ok {
		return nil
	}
	provider, ok := v.(*models.Provider)
	if !ok {
		return nil
	}
	return provider
}

// abortUnauthorized rejects the request, counting it against the client IP's
// window first so even auth failures carry the X-RateLimit-* headers. An
// exhausted window turns the rejection into a 429.
func abortUnauthorized(c *gin.Context, msg string) {
	if !applyWindow(c, "ip:"+getClientIP(c), config.AppConfig.MaxRequestsPerMin) {
		rejectRateLimited(c)
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    utils.CodeUnauthorized,
			"message": msg,
		},
	})
}
