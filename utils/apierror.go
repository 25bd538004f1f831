package utils

import (
	"fmt"
	"net/http"
)

// APIError is a business or validation error that maps onto the documented
// {"error": {"code", "message"}} envelope.
type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Wire error codes.
const (
	CodeInvalidRequest       = "invalid_request"
	CodeMissingRequiredField = "missing_required_field"
	CodeInvalidFieldFormat   = "invalid_field_format"
	CodeServiceNotFound      = "service_not_found"
	CodeTimeSlotNotFound     = "time_slot_not_found"
	CodeBookingNotFound      = "booking_not_found"
	CodeCustomerNotFound     = "customer_not_found"
	CodeDuplicateBooking     = "duplicate_booking"
	CodeTimeSlotFull         = "time_slot_full"
	CodeInvalidTransition    = "invalid_status_transition"
	CodeUnauthorized         = "unauthorized"
	CodeRateLimited          = "rate_limit_exceeded"
	CodeVersionConflict      = "version_conflict"
	CodeInternal             = "internal_error"
)

func NewValidationError(code, msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: msg}
}

func NewNotFoundError(code, msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: code, Message: msg}
}

func NewDuplicateBookingError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeDuplicateBooking,
		Message: "a booking already exists for this customer on the requested time slot and date",
	}
}

func NewTimeSlotFullError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeTimeSlotFull,
		Message: "the requested time slot has no remaining capacity on that date",
	}
}

func NewInvalidTransitionError(from, to string) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition booking status from %q to %q", from, to),
	}
}

func NewUnauthorizedError(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg}
}

func NewInternalError() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "an internal error occurred, please try again later",
	}
}
