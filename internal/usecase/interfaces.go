package usecase

import (
	"context"

	"storefront/internal/domain"
)

// EventPublisher emits domain events after the owning transaction commits.
type EventPublisher interface {
	CouponRedeemed(ctx context.Context, code string, r *domain.Redemption)
	LowStock(ctx context.Context, item *domain.InventoryItem)
}

// CouponCache is a read cache for coupon-by-code lookups. Implementations
// must treat every call as best-effort.
type CouponCache interface {
	Get(ctx context.Context, code string) (*domain.Coupon, bool)
	Set(ctx context.Context, coupon *domain.Coupon)
	Invalidate(ctx context.Context, code string)
}
