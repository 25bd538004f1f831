package models

import "time"

// Webhook event types emitted by the booking lifecycle.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventBookingDeleted   = "booking.deleted"
)

// Webhook event delivery states.
const (
	EventStatusPending   = "pending"
	EventStatusDelivered = "delivered"
	EventStatusFailed    = "failed"
)

// WebhookEvent is one outbox row. It is written in the same transaction as
// the booking change that produced it and delivered asynchronously.
type WebhookEvent struct {
	ID          string     `bson:"id" json:"id"`
	ProviderID  string     `bson:"provider_id" json:"provider_id"`
	ServiceID   string     `bson:"service_id" json:"service_id"`
	Type        string     `bson:"type" json:"type"`
	Payload     Booking    `bson:"payload" json:"payload"`
	Status      string     `bson:"status" json:"status"`
	Attempts    int        `bson:"attempts" json:"attempts"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
}
