package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
)

const addressColumns = `id, user_id, type, full_name, line1, line2, city, state,
	postal_code, country, phone, is_default, created_at, updated_at`

func scanAddress(row pgx.Row, a *domain.Address) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.Type, &a.FullName, &a.Line1, &a.Line2, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
}

func (q *Queries) InsertAddress(ctx context.Context, a *domain.Address) error {
	row := q.db.QueryRow(ctx, `
		INSERT INTO addresses (id, user_id, type, full_name, line1, line2, city, state,
			postal_code, country, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Type, a.FullName, a.Line1, a.Line2, a.City, a.State,
		a.PostalCode, a.Country, a.Phone, a.IsDefault,
	)
	return row.Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (q *Queries) GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	var a domain.Address
	row := q.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	if err := scanAddress(row, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (q *Queries) ListAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+addressColumns+` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (q *Queries) UpdateAddress(ctx context.Context, a *domain.Address) error {
	row := q.db.QueryRow(ctx, `
		UPDATE addresses
		SET type = $2, full_name = $3, line1 = $4, line2 = $5, city = $6, state = $7,
			postal_code = $8, country = $9, phone = $10, is_default = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Type, a.FullName, a.Line1, a.Line2, a.City, a.State,
		a.PostalCode, a.Country, a.Phone, a.IsDefault,
	)
	return row.Scan(&a.UpdatedAt)
}

func (q *Queries) DeleteAddress(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DemoteDefaultAddresses clears the default flag on every other address in
// the (user, type) scope. The record being promoted is excluded by identity,
// never by scope, so it cannot demote itself.
func (q *Queries) DemoteDefaultAddresses(ctx context.Context, userID uuid.UUID, addrType string, exclude uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE addresses
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND type = $2 AND id <> $3 AND is_default`,
		userID, addrType, exclude,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
