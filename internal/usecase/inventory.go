package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type InventoryService struct {
	store  repository.Store
	events EventPublisher
}

func NewInventoryService(store repository.Store, events EventPublisher) *InventoryService {
	return &InventoryService{store: store, events: events}
}

func (s *InventoryService) Upsert(ctx context.Context, i *domain.InventoryItem) error {
	if i.ProductID == uuid.Nil {
		return errors.New("inventory product is required")
	}
	if i.Quantity < 0 || i.LowStockThreshold < 0 {
		return errors.New("inventory quantities must not be negative")
	}
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return s.store.UpsertInventory(ctx, i)
}

func (s *InventoryService) Get(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error) {
	i, err := s.store.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return i, nil
}

// Adjust moves on-hand stock by delta and raises a low-stock event when the
// mutation leaves the item at or under its threshold.
func (s *InventoryService) Adjust(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	item, err := s.store.AdjustStock(ctx, productID, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if item.LowStock() && s.events != nil {
		s.events.LowStock(ctx, item)
	}
	return item, nil
}

// Reserve holds qty units for a pending order. The underlying update is
// conditional on availability, so concurrent reservations cannot oversell.
func (s *InventoryService) Reserve(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, errors.New("reserve quantity must be positive")
	}

	item, err := s.store.ReserveStock(ctx, productID, qty)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// No row updated: either the product is unknown or stock ran short.
	if _, getErr := s.store.GetInventory(ctx, productID); getErr != nil {
		if errors.Is(getErr, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, getErr
	}
	return nil, domain.ErrInsufficientStock
}

func (s *InventoryService) Release(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	if qty <= 0 {
		return nil, errors.New("release quantity must be positive")
	}

	item, err := s.store.ReleaseStock(ctx, productID, qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}
