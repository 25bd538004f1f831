package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondData wraps a successful payload in the documented {"data": ...} envelope.
func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// RespondList wraps a paginated collection payload with its meta block.
func RespondList(c *gin.Context, status int, data interface{}, pagination Pagination) {
	c.JSON(status, gin.H{"data": data, "pagination": pagination})
}

// RespondError renders any error through the {"error": {"code","message"}}
// envelope. Business errors carry their own status and code; anything else is
// logged as a defect and surfaced generically as a 500.
func RespondError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	GetLogger().Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	internal := NewInternalError()
	c.JSON(internal.Status, gin.H{"error": internal})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				internal := NewInternalError()
				c.JSON(http.StatusInternalServerError, gin.H{"error": internal})
				c.Abort()
			}
		}()
		c.Next()
	}
}
