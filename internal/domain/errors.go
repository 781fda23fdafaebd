package domain

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateCode       = errors.New("coupon code already exists")
	ErrCouponInactive      = errors.New("coupon is not currently valid")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrRedemptionLimit     = errors.New("user has reached the redemption limit for this coupon")
	ErrMinPurchase         = errors.New("cart total is below the coupon minimum purchase")
	ErrInsufficientStock   = errors.New("not enough stock available to reserve")
	ErrEmptyCart           = errors.New("cart has no items")
	ErrShippingUnavailable = errors.New("shipping method not available for destination")
	ErrConstraintViolation = errors.New("write violated a cross-record constraint")
)
