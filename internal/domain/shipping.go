package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ShippingMethod is a defaultable record with a single global scope: at most
// one method is the default at any committed state.
type ShippingMethod struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	BaseRate              float64   `json:"base_rate"`
	FreeShippingThreshold *float64  `json:"free_shipping_threshold,omitempty"`
	IncludedCountries     []string  `json:"included_countries"`
	ExcludedCountries     []string  `json:"excluded_countries"`
	EstimatedDays         int       `json:"estimated_days"`
	IsActive              bool      `json:"is_active"`
	IsDefault             bool      `json:"is_default"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// AvailableFor reports whether the method ships to the given country. A
// country on the excluded list is always refused; a non-empty included list
// acts as a whitelist; two empty lists mean universally available.
func (m *ShippingMethod) AvailableFor(country string) bool {
	for _, c := range m.ExcludedCountries {
		if strings.EqualFold(c, country) {
			return false
		}
	}
	if len(m.IncludedCountries) == 0 {
		return true
	}
	for _, c := range m.IncludedCountries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// FreeFor reports whether the order qualifies for free shipping. Methods
// without a configured threshold never ship free.
func (m *ShippingMethod) FreeFor(orderTotal float64) bool {
	return m.FreeShippingThreshold != nil && orderTotal >= *m.FreeShippingThreshold
}

// Quote returns the shipping cost for the given order total.
func (m *ShippingMethod) Quote(orderTotal float64) float64 {
	if m.FreeFor(orderTotal) {
		return 0
	}
	return m.BaseRate
}
