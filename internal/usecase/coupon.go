package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CouponService struct {
	store  repository.Store
	cache  CouponCache
	events EventPublisher
	now    func() time.Time
}

func NewCouponService(store repository.Store, cache CouponCache, events EventPublisher) *CouponService {
	return &CouponService{
		store:  store,
		cache:  cache,
		events: events,
		now:    time.Now,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCoupon(c *domain.Coupon) error {
	if c.Code == "" {
		return errors.New("coupon code is required")
	}
	if c.Type != domain.CouponPercentage && c.Type != domain.CouponFixed {
		return errors.New("coupon type must be percentage or fixed")
	}
	if c.Value < 0 {
		return errors.New("coupon value must not be negative")
	}
	if c.Type == domain.CouponPercentage && c.Value > 100 {
		return errors.New("percentage coupon value must not exceed 100")
	}
	if c.MinPurchase < 0 {
		return errors.New("minimum purchase must not be negative")
	}
	if c.EndDate.IsZero() {
		return errors.New("coupon end date is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.New("coupon end date precedes start date")
	}
	return nil
}

func (s *CouponService) Create(ctx context.Context, c *domain.Coupon) error {
	c.Code = normalizeCode(c.Code)
	if err := validateCoupon(c); err != nil {
		return err
	}

	c.ID = uuid.New()
	if err := s.store.CreateCoupon(ctx, c); err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (s *CouponService) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	code = normalizeCode(code)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, code); ok {
			return cached, nil
		}
	}

	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, coupon)
	}
	return coupon, nil
}

func (s *CouponService) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.store.ListCoupons(ctx)
}

func (s *CouponService) Update(ctx context.Context, c *domain.Coupon) error {
	c.Code = normalizeCode(c.Code)
	if err := validateCoupon(c); err != nil {
		return err
	}

	if err := s.store.UpdateCoupon(ctx, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, c.Code)
	}
	return nil
}

func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	code, err := s.store.DeleteCoupon(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, code)
	}
	return nil
}

// PreviewResult is a discount quote that consumes nothing.
type PreviewResult struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cart_total"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// Preview validates the coupon and computes the discount for a cart total
// without touching the usage counter.
func (s *CouponService) Preview(ctx context.Context, code string, cartTotal float64) (*PreviewResult, error) {
	coupon, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := checkValidity(coupon, s.now()); err != nil {
		return nil, err
	}
	if cartTotal < coupon.MinPurchase {
		return nil, domain.ErrMinPurchase
	}

	discount := coupon.Discount(cartTotal)
	return &PreviewResult{
		Code:      coupon.Code,
		CartTotal: cartTotal,
		Discount:  discount,
		Total:     payable(cartTotal, discount),
	}, nil
}

// Redeem consumes one use of the coupon for an order. The per-user check,
// the capped counter increment and the redemption record are a single
// transaction; the counter moves only via the conditional update, so the cap
// holds under concurrent redemptions.
func (s *CouponService) Redeem(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error) {
	code = normalizeCode(code)

	var redemption *domain.Redemption
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		// Fresh read inside the transaction; the cache may lag on used_count.
		coupon, err := q.GetCouponByCode(ctx, code)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := checkValidity(coupon, s.now()); err != nil {
			return err
		}
		if cartTotal < coupon.MinPurchase {
			return domain.ErrMinPurchase
		}

		if coupon.PerUserLimit > 0 {
			used, err := q.CountRedemptions(ctx, coupon.ID, userID)
			if err != nil {
				return err
			}
			if used >= coupon.PerUserLimit {
				return domain.ErrRedemptionLimit
			}
		}

		consumed, err := q.ConsumeCoupon(ctx, code)
		if err != nil {
			return err
		}
		if consumed == 0 {
			return domain.ErrCouponExhausted
		}

		redemption = &domain.Redemption{
			ID:       uuid.New(),
			CouponID: coupon.ID,
			UserID:   userID,
			OrderID:  orderID,
			Discount: coupon.Discount(cartTotal),
		}
		return q.InsertRedemption(ctx, redemption)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, code)
	}
	if s.events != nil {
		s.events.CouponRedeemed(ctx, code, redemption)
	}
	return redemption, nil
}

func checkValidity(c *domain.Coupon, now time.Time) error {
	if c.IsValid(now) {
		return nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return domain.ErrCouponExhausted
	}
	return domain.ErrCouponInactive
}

// payable floors the amount owed at zero; a fixed discount can exceed the
// cart total but never turns into a payout.
func payable(cartTotal, discount float64) float64 {
	if discount > cartTotal {
		return 0
	}
	return cartTotal - discount
}
