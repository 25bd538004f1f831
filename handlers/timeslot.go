// File: handlers/timeslot.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reservekit/middleware"
	"reservekit/models"
	"reservekit/utils"
)

func (hb *HandlerBundle) ListTimeSlotsHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Query("service_id")
	if serviceID == "" {
		utils.RespondError(c, utils.NewValidationError(utils.CodeMissingRequiredField,
			"service_id query parameter is required"))
		return
	}
	page := utils.ParsePageRequest(c)

	slots, pagination, err := hb.Catalog.ListTimeSlots(c.Request.Context(), provider, serviceID, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	utils.RespondList(c, http.StatusOK, slots, pagination)
}

// BatchUpsertTimeSlotsHandler replaces or extends the weekly template in one
// all-or-nothing request.
func (hb *HandlerBundle) BatchUpsertTimeSlotsHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	var req models.BatchUpsertTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}
	if req.ServiceID == "" {
		utils.RespondError(c, utils.NewValidationError(utils.CodeMissingRequiredField,
			"service_id is required"))
		return
	}

	slots, err := hb.Catalog.BatchUpsertTimeSlots(c.Request.Context(), provider, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, slots)
}

func (hb *HandlerBundle) DeleteTimeSlotHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	slotID := c.Param("id")

	if err := hb.Catalog.DeleteTimeSlot(c.Request.Context(), provider, slotID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTimeSlotsByDayHandler clears a whole weekday from the template; a day
// with no slots still succeeds with zero deleted.
func (hb *HandlerBundle) DeleteTimeSlotsByDayHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Query("service_id")
	if serviceID == "" {
		utils.RespondError(c, utils.NewValidationError(utils.CodeMissingRequiredField,
			"service_id query parameter is required"))
		return
	}

	day, err := strconv.Atoi(c.Query("day_of_week"))
	if err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidFieldFormat,
			"day_of_week must be an integer between 0 and 6"))
		return
	}

	deleted, err := hb.Catalog.DeleteTimeSlotsByDay(c.Request.Context(), provider, serviceID, day)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"deleted": deleted})
}
