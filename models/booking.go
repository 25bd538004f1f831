package models

import "time"

// Booking status values. Cancelled is terminal for the status field; the row
// itself may still be hard-deleted.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a customer's claim on one seat of one occurrence.
type Booking struct {
	ID           string    `bson:"id" json:"id"`
	ServiceID    string    `bson:"service_id" json:"service_id"`
	TimeSlotID   string    `bson:"time_slot_id" json:"time_slot_id"`
	Date         string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Status       string    `bson:"status" json:"status"`
	CancelReason string    `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	Message      string    `bson:"message,omitempty" json:"message,omitempty"`
	CustomerID   string    `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	Version      int       `bson:"version" json:"version"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// CreateBookingRequest is the payload for POST /v1/bookings.
type CreateBookingRequest struct {
	TimeSlotID string       `json:"time_slot_id" binding:"required"`
	Date       string       `json:"date" binding:"required"`
	Customer   CustomerInfo `json:"customer"`
	Message    string       `json:"message"`
}

// UpdateBookingRequest is the payload for PATCH /v1/bookings/:id. Nil fields
// are left untouched; status changes route through the state machine.
type UpdateBookingRequest struct {
	Status       *string `json:"status"`
	CancelReason *string `json:"cancel_reason"`
	Date         *string `json:"date"`
	Message      *string `json:"message"`
}
