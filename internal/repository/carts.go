package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

func (q *Queries) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	_, err := q.db.Exec(ctx, `
		INSERT INTO carts (id, user_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		uuid.New(), userID,
	)
	if err != nil {
		return nil, err
	}

	var c domain.Cart
	err = q.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, `
		SELECT id, cart_id, product_id, name, unit_price, quantity
		FROM cart_items WHERE cart_id = $1
		ORDER BY name`,
		c.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Name,
			&item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, item)
	}
	return &c, rows.Err()
}

// UpsertCartItem adds the item or, when the product is already in the cart,
// folds the quantity into the existing line.
func (q *Queries) UpsertCartItem(ctx context.Context, item *domain.CartItem) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price
		RETURNING id, quantity`,
		item.ID, item.CartID, item.ProductID, item.Name, item.UnitPrice, item.Quantity,
	)
	return row.Scan(&item.ID, &item.Quantity)
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID, qty,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
