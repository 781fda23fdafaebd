package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
)

const shippingColumns = `id, name, base_rate, free_shipping_threshold, included_countries,
	excluded_countries, estimated_days, is_active, is_default, created_at, updated_at`

func scanShippingMethod(row pgx.Row, m *domain.ShippingMethod) error {
	return row.Scan(
		&m.ID, &m.Name, &m.BaseRate, &m.FreeShippingThreshold, &m.IncludedCountries,
		&m.ExcludedCountries, &m.EstimatedDays, &m.IsActive, &m.IsDefault,
		&m.CreatedAt, &m.UpdatedAt,
	)
}

func (q *Queries) InsertShippingMethod(ctx context.Context, m *domain.ShippingMethod) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO shipping_methods (id, name, base_rate, free_shipping_threshold,
			included_countries, excluded_countries, estimated_days, is_active, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		m.ID, m.Name, m.BaseRate, m.FreeShippingThreshold,
		m.IncludedCountries, m.ExcludedCountries, m.EstimatedDays, m.IsActive, m.IsDefault,
	)
	return row.Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (q *Queries) GetShippingMethod(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error) {
	var m domain.ShippingMethod
	row := q.db.QueryRow(ctx, `SELECT `+shippingColumns+` FROM shipping_methods WHERE id = $1`, id)
	if err := scanShippingMethod(row, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *Queries) ListShippingMethods(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error) {
	query := `SELECT ` + shippingColumns + ` FROM shipping_methods`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY is_default DESC, name`

	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.ShippingMethod
	for rows.Next() {
		var m domain.ShippingMethod
		if err := scanShippingMethod(rows, &m); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (q *Queries) UpdateShippingMethod(ctx context.Context, m *domain.ShippingMethod) error {
	row := q.db.QueryRow(ctx, `
		UPDATE shipping_methods
		SET name = $2, base_rate = $3, free_shipping_threshold = $4, included_countries = $5,
			excluded_countries = $6, estimated_days = $7, is_active = $8, is_default = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		m.ID, m.Name, m.BaseRate, m.FreeShippingThreshold, m.IncludedCountries,
		m.ExcludedCountries, m.EstimatedDays, m.IsActive, m.IsDefault,
	)
	return row.Scan(&m.UpdatedAt)
}

func (q *Queries) DeleteShippingMethod(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM shipping_methods WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DemoteDefaultShippingMethods clears the default flag on every method other
// than the one being promoted. Shipping methods share a single global scope.
func (q *Queries) DemoteDefaultShippingMethods(ctx context.Context, exclude uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE shipping_methods
		SET is_default = FALSE, updated_at = NOW()
		WHERE id <> $1 AND is_default`,
		exclude,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
