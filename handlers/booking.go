// File: handlers/booking.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservekit/middleware"
	"reservekit/models"
	"reservekit/utils"
)

func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Query("service_id")
	if serviceID == "" {
		utils.RespondError(c, utils.NewValidationError(utils.CodeMissingRequiredField,
			"service_id query parameter is required"))
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}

	booking, err := hb.Bookings.CreateBooking(c.Request.Context(), provider, serviceID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusCreated, booking)
}

func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	booking, err := hb.Bookings.GetBooking(c.Request.Context(), provider, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, booking)
}

func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)
	serviceID := c.Query("service_id")
	if serviceID == "" {
		utils.RespondError(c, utils.NewValidationError(utils.CodeMissingRequiredField,
			"service_id query parameter is required"))
		return
	}
	page := utils.ParsePageRequest(c)

	bookings, pagination, err := hb.Bookings.ListBookings(c.Request.Context(), provider, serviceID, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondList(c, http.StatusOK, bookings, pagination)
}

func (hb *HandlerBundle) UpdateBookingHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}

	booking, err := hb.Bookings.UpdateBooking(c.Request.Context(), provider, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, booking)
}

func (hb *HandlerBundle) DeleteBookingHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	if err := hb.Bookings.DeleteBooking(c.Request.Context(), provider, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (hb *HandlerBundle) GetBookingCustomerHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	customer, err := hb.Bookings.GetBookingCustomer(c.Request.Context(), provider, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, customer)
}

func (hb *HandlerBundle) UpdateBookingCustomerHandler(c *gin.Context) {
	provider := middleware.ProviderFromContext(c)

	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utils.RespondError(c, utils.NewValidationError(utils.CodeInvalidRequest,
			"invalid request body"))
		return
	}

	customer, err := hb.Bookings.UpdateBookingCustomer(c.Request.Context(), provider, c.Param("id"), info)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondData(c, http.StatusOK, customer)
}
