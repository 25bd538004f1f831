// File: handlers/service.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"reservekit/middleware"
	"reservekit/models"
	"reservekit/utils"
)

func (hb *HandlerBundle) CreateServiceHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}

	service, err := hb.Catalog.CreateService(c.Request.Context(), provider, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, service)
}

func (hb *HandlerBundle) GetServiceHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Param("id")

	service, err := hb.Catalog.GetService(c.Request.Context(), provider.ID, serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(c, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID)))
			return
		}
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, service)
}

func (hb *HandlerBundle) ListServicesHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	page := utils.ParsePageRequest(c)

	services, pagination, err := hb.Catalog.ListServices(c.Request.Context(), provider, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	utils.RespondList(c, http.StatusOK, services, pagination)
}

func (hb *HandlerBundle) UpdateServiceHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Param("id")

	var req models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}

	service, err := hb.Catalog.UpdateService(c.Request.Context(), provider, serviceID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, service)
}

func (hb *HandlerBundle) DeleteServiceHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Param("id")

	if err := hb.Catalog.DeleteService(c.Request.Context(), provider, serviceID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
