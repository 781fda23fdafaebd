package domain

import (
	"time"

	"github.com/google/uuid"
)

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

// Coupon is a discount rule redeemable against a cart. Codes are stored
// upper-cased and unique. The validity window is inclusive on both ends.
type Coupon struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Type         CouponType `json:"type"`
	Value        float64    `json:"value"`
	MinPurchase  float64    `json:"min_purchase"`
	MaxDiscount  *float64   `json:"max_discount,omitempty"`
	IsActive     bool       `json:"is_active"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	UsageLimit   *int       `json:"usage_limit,omitempty"`
	UsedCount    int        `json:"used_count"`
	PerUserLimit int        `json:"per_user_limit"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsValid reports whether the coupon can be applied at the given instant.
// It checks the active flag, the date window and the global usage cap; it
// does not know about per-user redemption history.
func (c *Coupon) IsValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.StartDate) || now.After(c.EndDate) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Discount computes the discount amount for the given cart total. It returns
// 0 when the total is below MinPurchase and caps the result at MaxDiscount
// when one is set. Callers must check IsValid separately; a fixed-amount
// discount is not clamped to the cart total.
func (c *Coupon) Discount(cartTotal float64) float64 {
	if cartTotal < c.MinPurchase {
		return 0
	}
	var discount float64
	switch c.Type {
	case CouponPercentage:
		discount = cartTotal * c.Value / 100
	default:
		discount = c.Value
	}
	if c.MaxDiscount != nil && discount > *c.MaxDiscount {
		discount = *c.MaxDiscount
	}
	if discount < 0 {
		return 0
	}
	return discount
}

// Redemption records a single use of a coupon by a user.
type Redemption struct {
	ID         uuid.UUID `json:"id"`
	CouponID   uuid.UUID `json:"coupon_id"`
	UserID     uuid.UUID `json:"user_id"`
	OrderID    uuid.UUID `json:"order_id"`
	Discount   float64   `json:"discount"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
