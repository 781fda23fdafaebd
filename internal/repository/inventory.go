package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
)

const inventoryColumns = `id, product_id, sku, quantity, reserved_quantity, low_stock_threshold, updated_at`

func scanInventory(row pgx.Row, i *domain.InventoryItem) error {
	return row.Scan(
		&i.ID, &i.ProductID, &i.SKU, &i.Quantity, &i.ReservedQuantity,
		&i.LowStockThreshold, &i.UpdatedAt,
	)
}

func (q *Queries) UpsertInventory(ctx context.Context, i *domain.InventoryItem) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO inventory (id, product_id, sku, quantity, reserved_quantity, low_stock_threshold)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET sku = EXCLUDED.sku, quantity = EXCLUDED.quantity,
			low_stock_threshold = EXCLUDED.low_stock_threshold, updated_at = NOW()
		RETURNING id, reserved_quantity, updated_at`,
		i.ID, i.ProductID, i.SKU, i.Quantity, i.ReservedQuantity, i.LowStockThreshold,
	)
	return row.Scan(&i.ID, &i.ReservedQuantity, &i.UpdatedAt)
}

func (q *Queries) GetInventory(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	row := q.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1`, productID)
	if err := scanInventory(row, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (q *Queries) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	row := q.db.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE product_id = $1
		RETURNING `+inventoryColumns,
		productID, delta,
	)
	if err := scanInventory(row, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// ReserveStock holds qty units in a single conditional update; the guard on
// available quantity makes concurrent reservations safe without a
// transaction. pgx.ErrNoRows means the stock was insufficient.
func (q *Queries) ReserveStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	row := q.db.QueryRow(ctx, `
		UPDATE inventory
		SET reserved_quantity = reserved_quantity + $2, updated_at = NOW()
		WHERE product_id = $1 AND quantity - reserved_quantity >= $2
		RETURNING `+inventoryColumns,
		productID, qty,
	)
	if err := scanInventory(row, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (q *Queries) ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	var i domain.InventoryItem
	row := q.db.QueryRow(ctx, `
		UPDATE inventory
		SET reserved_quantity = GREATEST(reserved_quantity - $2, 0), updated_at = NOW()
		WHERE product_id = $1
		RETURNING `+inventoryColumns,
		productID, qty,
	)
	if err := scanInventory(row, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (q *Queries) InsertRestockAlert(ctx context.Context, a *domain.RestockAlert) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO restock_alerts (id, product_id, sku, available)
		VALUES ($1, $2, $3, $4)
		RETURNING raised_at`,
		a.ID, a.ProductID, a.SKU, a.Available,
	)
	return row.Scan(&a.RaisedAt)
}
