package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

func (q *Queries) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error) {
	_, err := q.db.Exec(ctx, `
		INSERT INTO wishlists (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID,
	)
	if err != nil {
		return nil, err
	}

	var w domain.Wishlist
	err = q.db.QueryRow(ctx, `
		SELECT id, user_id, created_at FROM wishlists WHERE user_id = $1`,
		userID,
	).Scan(&w.ID, &w.UserID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, `
		SELECT id, wishlist_id, product_id, name, unit_price, added_at
		FROM wishlist_items WHERE wishlist_id = $1
		ORDER BY added_at DESC`,
		w.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.ID, &item.WishlistID, &item.ProductID, &item.Name,
			&item.UnitPrice, &item.AddedAt); err != nil {
			return nil, err
		}
		w.Items = append(w.Items, item)
	}
	return &w, rows.Err()
}

func (q *Queries) AddWishlistItem(ctx context.Context, item *domain.WishlistItem) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO wishlist_items (id, wishlist_id, product_id, name, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wishlist_id, product_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, added_at`,
		item.ID, item.WishlistID, item.ProductID, item.Name, item.UnitPrice,
	)
	return row.Scan(&item.ID, &item.AddedAt)
}

func (q *Queries) GetWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	err := q.db.QueryRow(ctx, `
		SELECT id, wishlist_id, product_id, name, unit_price, added_at
		FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`,
		wishlistID, productID,
	).Scan(&item.ID, &item.WishlistID, &item.ProductID, &item.Name, &item.UnitPrice, &item.AddedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (q *Queries) RemoveWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`,
		wishlistID, productID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
