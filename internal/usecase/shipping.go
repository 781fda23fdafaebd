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

type ShippingService struct {
	store repository.Store
}

func NewShippingService(store repository.Store) *ShippingService {
	return &ShippingService{store: store}
}

func validateShippingMethod(m *domain.ShippingMethod) error {
	if m.Name == "" {
		return errors.New("shipping method name is required")
	}
	if m.BaseRate < 0 {
		return errors.New("shipping base rate must not be negative")
	}
	if m.FreeShippingThreshold != nil && *m.FreeShippingThreshold < 0 {
		return errors.New("free shipping threshold must not be negative")
	}
	return nil
}

func (s *ShippingService) Create(ctx context.Context, m *domain.ShippingMethod) error {
	if err := validateShippingMethod(m); err != nil {
		return err
	}
	m.ID = uuid.New()

	if !m.IsDefault {
		return s.store.InsertShippingMethod(ctx, m)
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DemoteDefaultShippingMethods(ctx, m.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
		}
		return q.InsertShippingMethod(ctx, m)
	})
}

func (s *ShippingService) Get(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error) {
	m, err := s.store.GetShippingMethod(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *ShippingService) List(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error) {
	return s.store.ListShippingMethods(ctx, activeOnly)
}

func (s *ShippingService) Update(ctx context.Context, m *domain.ShippingMethod) error {
	if err := validateShippingMethod(m); err != nil {
		return err
	}

	if !m.IsDefault {
		if err := s.store.UpdateShippingMethod(ctx, m); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	}

	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DemoteDefaultShippingMethods(ctx, m.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
		}
		if err := q.UpdateShippingMethod(ctx, m); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	})
}

func (s *ShippingService) SetDefault(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsDefault = true

	if err := s.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ShippingService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.DeleteShippingMethod(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// QuoteOption is one eligible shipping method priced for an order.
type QuoteOption struct {
	Method domain.ShippingMethod `json:"method"`
	Rate   float64               `json:"rate"`
	Free   bool                  `json:"free"`
}

// Quote prices every active method that ships to the destination country.
func (s *ShippingService) Quote(ctx context.Context, country string, orderTotal float64) ([]QuoteOption, error) {
	methods, err := s.store.ListShippingMethods(ctx, true)
	if err != nil {
		return nil, err
	}

	options := make([]QuoteOption, 0, len(methods))
	for i := range methods {
		m := methods[i]
		if !m.AvailableFor(country) {
			continue
		}
		options = append(options, QuoteOption{
			Method: m,
			Rate:   m.Quote(orderTotal),
			Free:   m.FreeFor(orderTotal),
		})
	}
	return options, nil
}
