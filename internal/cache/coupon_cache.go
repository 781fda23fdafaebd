package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"storefront/internal/domain"
)

const couponKeyPrefix = "coupon:"

// CouponCache is a redis read cache for coupon-by-code lookups. Every method
// degrades to a miss or a no-op on redis errors; the store of record stays
// authoritative.
type CouponCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCouponCache(client *redis.Client, ttl time.Duration) *CouponCache {
	return &CouponCache{client: client, ttl: ttl}
}

func (c *CouponCache) Get(ctx context.Context, code string) (*domain.Coupon, bool) {
	payload, err := c.client.Get(ctx, couponKeyPrefix+code).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zlog.Warn().Err(err).Str("code", code).Msg("coupon cache read failed")
		}
		return nil, false
	}

	var coupon domain.Coupon
	if err := json.Unmarshal(payload, &coupon); err != nil {
		zlog.Warn().Err(err).Str("code", code).Msg("coupon cache entry corrupt, dropping")
		c.Invalidate(ctx, code)
		return nil, false
	}
	return &coupon, true
}

func (c *CouponCache) Set(ctx context.Context, coupon *domain.Coupon) {
	payload, err := json.Marshal(coupon)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, couponKeyPrefix+coupon.Code, payload, c.ttl).Err(); err != nil {
		zlog.Warn().Err(err).Str("code", coupon.Code).Msg("coupon cache write failed")
	}
}

func (c *CouponCache) Invalidate(ctx context.Context, code string) {
	if err := c.client.Del(ctx, couponKeyPrefix+code).Err(); err != nil {
		zlog.Warn().Err(err).Str("code", code).Msg("coupon cache invalidation failed")
	}
}
