package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
)

// Address is a defaultable record: at most one address per (user, type) pair
// may carry IsDefault at any committed state.
type Address struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Type       string    `json:"type"`
	FullName   string    `json:"full_name"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ValidAddressType(t string) bool {
	return t == AddressShipping || t == AddressBilling
}
