package models

import "time"

// Service is a bookable offering owned by one provider. Its timezone scopes
// all weekday computations for the time slots underneath it.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Timezone    string    `bson:"timezone" json:"timezone"`
	Version     int       `bson:"version" json:"version"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// CreateServiceRequest is the payload for POST /v1/services.
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Timezone    string          `json:"timezone" binding:"required"`
	TimeSlots   []TimeSlotInput `json:"time_slots"`
}

// UpdateServiceRequest is the payload for PATCH /v1/services/:id. Nil fields
// are left untouched.
type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Timezone    *string `json:"timezone"`
	Version     *int    `json:"version"`
}
