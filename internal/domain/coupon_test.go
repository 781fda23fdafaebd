package domain

import (
	"testing"
	"time"
)

func window(c *Coupon, from, to time.Time) *Coupon {
	c.StartDate = from
	c.EndDate = to
	return c
}

func TestIsValid_ActiveWithinWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := window(&Coupon{IsActive: true}, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))

	if !c.IsValid(now) {
		t.Fatalf("expected coupon to be valid")
	}
}

func TestIsValid_InactiveFlagWins(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := window(&Coupon{IsActive: false}, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))

	if c.IsValid(now) {
		t.Fatalf("inactive coupon must be invalid regardless of window")
	}
}

func TestIsValid_BoundaryInstants(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	c := window(&Coupon{IsActive: true}, now, now)
	if !c.IsValid(now) {
		t.Fatalf("coupon with start = end = now must be valid at exactly now")
	}
	if c.IsValid(now.Add(time.Nanosecond)) {
		t.Fatalf("coupon must be invalid one instant past the window")
	}
	if c.IsValid(now.Add(-time.Nanosecond)) {
		t.Fatalf("coupon must be invalid one instant before the window")
	}
}

func TestIsValid_UsageCapReached(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	limit := 5
	c := window(&Coupon{IsActive: true, UsageLimit: &limit, UsedCount: 5},
		now.AddDate(0, 0, -10), now.AddDate(0, 0, 10))

	if c.IsValid(now) {
		t.Fatalf("exhausted coupon must be invalid regardless of date window")
	}

	c.UsedCount = 4
	if !c.IsValid(now) {
		t.Fatalf("coupon under the cap must be valid")
	}
}

func TestIsValid_NoUsageLimit(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := window(&Coupon{IsActive: true, UsedCount: 1_000_000},
		now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))

	if !c.IsValid(now) {
		t.Fatalf("absent usage limit means unlimited")
	}
}

func TestDiscount_PercentageClampedToMax(t *testing.T) {
	max := 20.0
	c := &Coupon{Type: CouponPercentage, Value: 10, MinPurchase: 50, MaxDiscount: &max}

	got := c.Discount(300)
	if got != 20 {
		t.Fatalf("expected raw 30 clamped to 20, got %v", got)
	}
}

func TestDiscount_PercentageUnderCap(t *testing.T) {
	max := 20.0
	c := &Coupon{Type: CouponPercentage, Value: 10, MaxDiscount: &max}

	got := c.Discount(150)
	if got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestDiscount_FixedExceedsCartTotal(t *testing.T) {
	c := &Coupon{Type: CouponFixed, Value: 15}

	// Fixed discounts are deliberately not clamped to the cart total.
	got := c.Discount(10)
	if got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestDiscount_BelowMinPurchase(t *testing.T) {
	c := &Coupon{Type: CouponFixed, Value: 15, MinPurchase: 50}

	if got := c.Discount(49.99); got != 0 {
		t.Fatalf("expected 0 below the minimum purchase, got %v", got)
	}
	if got := c.Discount(50); got != 15 {
		t.Fatalf("expected 15 at exactly the minimum purchase, got %v", got)
	}
}

func TestDiscount_NeverNegative(t *testing.T) {
	coupons := []*Coupon{
		{Type: CouponPercentage, Value: 0},
		{Type: CouponFixed, Value: 0},
		{Type: CouponPercentage, Value: 100},
	}
	for _, c := range coupons {
		for _, total := range []float64{0, 1, 99.99, 10_000} {
			if got := c.Discount(total); got < 0 {
				t.Fatalf("discount must be non-negative, got %v for total %v", got, total)
			}
		}
	}
}
