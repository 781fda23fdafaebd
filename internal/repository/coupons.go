package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
)

const couponColumns = `id, code, type, value, min_purchase, max_discount, is_active,
	start_date, end_date, usage_limit, used_count, per_user_limit, created_at, updated_at`

func scanCoupon(row pgx.Row, c *domain.Coupon) error {
	return row.Scan(
		&c.ID, &c.Code, &c.Type, &c.Value, &c.MinPurchase, &c.MaxDiscount, &c.IsActive,
		&c.StartDate, &c.EndDate, &c.UsageLimit, &c.UsedCount, &c.PerUserLimit,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func (q *Queries) CreateCoupon(ctx context.Context, c *domain.Coupon) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO coupons (id, code, type, value, min_purchase, max_discount, is_active,
			start_date, end_date, usage_limit, used_count, per_user_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11)
		RETURNING created_at, updated_at`,
		c.ID, c.Code, c.Type, c.Value, c.MinPurchase, c.MaxDiscount, c.IsActive,
		c.StartDate, c.EndDate, c.UsageLimit, c.PerUserLimit,
	)
	return row.Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (q *Queries) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	row := q.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)
	if err := scanCoupon(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := q.db.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (q *Queries) UpdateCoupon(ctx context.Context, c *domain.Coupon) error {
	row := q.db.QueryRow(ctx, `
		UPDATE coupons
		SET type = $2, value = $3, min_purchase = $4, max_discount = $5, is_active = $6,
			start_date = $7, end_date = $8, usage_limit = $9, per_user_limit = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING used_count, updated_at`,
		c.ID, c.Type, c.Value, c.MinPurchase, c.MaxDiscount, c.IsActive,
		c.StartDate, c.EndDate, c.UsageLimit, c.PerUserLimit,
	)
	return row.Scan(&c.UsedCount, &c.UpdatedAt)
}

// DeleteCoupon returns the deleted code so callers can invalidate caches.
func (q *Queries) DeleteCoupon(ctx context.Context, id uuid.UUID) (string, error) {
	var code string
	err := q.db.QueryRow(ctx, `DELETE FROM coupons WHERE id = $1 RETURNING code`, id).Scan(&code)
	return code, err
}

// ConsumeCoupon is the atomic increment-with-cap-check: the counter only
// moves when the usage limit has not been reached, so concurrent redemptions
// cannot oversell a limited coupon. Returns the number of rows updated.
func (q *Queries) ConsumeCoupon(ctx context.Context, code string) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`,
		code,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) CountRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	var n int
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2`,
		couponID, userID,
	).Scan(&n)
	return n, err
}

func (q *Queries) InsertRedemption(ctx context.Context, r *domain.Redemption) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO coupon_redemptions (id, coupon_id, user_id, order_id, discount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING redeemed_at`,
		r.ID, r.CouponID, r.UserID, r.OrderID, r.Discount,
	)
	return row.Scan(&r.RedeemedAt)
}
