package models

import "time"

// Customer is scoped per service and deduplicated by email (or phone when no
// email is present). All contact fields are optional at intake.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	ServiceID string    `bson:"service_id" json:"service_id"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CustomerInfo is the customer block supplied on booking creation and patch.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// IsEmpty reports whether no contact detail was supplied at all.
func (ci CustomerInfo) IsEmpty() bool {
	return ci.Name == "" && ci.Email == "" && ci.Phone == ""
}
