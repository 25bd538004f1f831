package models

import "time"

// Provider is a tenant account that owns services and holds the API key used
// to authenticate requests.
type Provider struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	APIKeyHash      string    `bson:"api_key_hash" json:"-"`
	WebhookURL      string    `bson:"webhook_url,omitempty" json:"webhook_url,omitempty"`
	RateLimitPerMin int       `bson:"rate_limit_per_min" json:"rate_limit_per_min"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// AuthTokenRequest is the dashboard sign-in payload.
type AuthTokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
