// File: handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"reservekit/models"
	"reservekit/utils"
)

const dashboardTokenTTL = 24 * time.Hour

// IssueTokenHandler exchanges dashboard credentials for a short-lived JWT.
func (hb *HandlerBundle) IssueTokenHandler(c *gin.Context) {
	var req models.AuthTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"email and password are required"))
		return
	}

	provider, err := hb.Providers.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.GetLogger().Error("provider lookup failed", zap.Error(err))
		}
		// Same response for unknown email and bad password.
		utils.RespondError(c, utils.NewUnauthorizedError("invalid credentials"))
		return
	}
	if !utils.CheckPassword(provider.PasswordHash, req.Password) {
		utils.RespondError(c, utils.NewUnauthorizedError("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(provider.ID, provider.Email, dashboardTokenTTL)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": time.Now().Add(dashboardTokenTTL).UTC().Format(time.RFC3339),
	})
}
