package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type AddressService struct {
	store repository.Store
}

func NewAddressService(store repository.Store) *AddressService {
	return &AddressService{store: store}
}

func validateAddress(a *domain.Address) error {
	if a.UserID == uuid.Nil {
		return errors.New("address user is required")
	}
	if !domain.ValidAddressType(a.Type) {
		return errors.New("address type must be shipping or billing")
	}
	if a.Line1 == "" || a.City == "" || a.PostalCode == "" || a.Country == "" {
		return errors.New("address line1, city, postal code and country are required")
	}
	return nil
}

func (s *AddressService) Create(ctx context.Context, a *domain.Address) error {
	if err := validateAddress(a); err != nil {
		return err
	}
	a.ID = uuid.New()

	if !a.IsDefault {
		return s.store.InsertAddress(ctx, a)
	}

	// Promotion and demotion commit together; two racing promotions in the
	// same scope serialize on the demotion update's row locks.
	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DemoteDefaultAddresses(ctx, a.UserID, a.Type, a.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
		}
		return q.InsertAddress(ctx, a)
	})
}

func (s *AddressService) Get(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	a, err := s.store.GetAddress(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	return s.store.ListAddresses(ctx, userID)
}

func (s *AddressService) Update(ctx context.Context, a *domain.Address) error {
	if err := validateAddress(a); err != nil {
		return err
	}

	// Clearing the flag on a non-default record never triggers demotion.
	if !a.IsDefault {
		if err := s.store.UpdateAddress(ctx, a); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DemoteDefaultAddresses(ctx, a.UserID, a.Type, a.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
		}
		if err := q.UpdateAddress(ctx, a); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	})
}

// SetDefault promotes an existing address to the default of its
// (user, type) scope.
func (s *AddressService) SetDefault(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.IsDefault = true

	if err := s.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.DeleteAddress(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
