// File: handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reservekit/database"
	"reservekit/utils"
)

// HealthHandler reports liveness plus the state of the mongo and redis
// dependencies; any degraded dependency turns the response into a 503.
func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{"mongo": "ok", "redis": "ok"}

	if err := database.MongoClient.Ping(ctx, nil); err != nil {
		deps["mongo"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := utils.GetCacheClient().Ping(ctx).Err(); err != nil {
		deps["redis"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	word := "ok"
	if status != http.StatusOK {
		word = "degraded"
	}
	c.JSON(status, gin.H{
		"status":       word,
		"dependencies": deps,
	})
}
