package kafka

import (
	"time"

	"github.com/google/uuid"
)

type CouponRedeemedPayload struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	Code          string    `json:"code"`
	CouponID      uuid.UUID `json:"coupon_id"`
	UserID        uuid.UUID `json:"user_id"`
	OrderID       uuid.UUID `json:"order_id"`
	Discount      float64   `json:"discount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type StockLowPayload struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	Quantity      int       `json:"quantity"`
	Threshold     int       `json:"threshold"`
	OccurredAt    time.Time `json:"occurred_at"`
}
