package domain

import (
	"time"

	"github.com/google/uuid"
)

type Wishlist struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Items     []WishlistItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

type WishlistItem struct {
	ID         uuid.UUID `json:"id"`
	WishlistID uuid.UUID `json:"wishlist_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	AddedAt    time.Time `json:"added_at"`
}
