package domain

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	SKU               string    `json:"sku"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Available is the quantity not held by reservations. It can go negative
// only when a write path bypassed the reservation check.
func (i *InventoryItem) Available() int {
	return i.Quantity - i.ReservedQuantity
}

func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// RestockAlert is recorded when a stock mutation leaves an item low.
type RestockAlert struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Available int       `json:"available"`
	RaisedAt  time.Time `json:"raised_at"`
}
