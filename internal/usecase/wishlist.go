package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type WishlistService struct {
	store repository.Store
}

func NewWishlistService(store repository.Store) *WishlistService {
	return &WishlistService{store: store}
}

func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error) {
	return s.store.GetOrCreateWishlist(ctx, userID)
}

func (s *WishlistService) AddItem(ctx context.Context, userID, productID uuid.UUID, name string, unitPrice float64) (*domain.Wishlist, error) {
	w, err := s.store.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &domain.WishlistItem{
		ID:         uuid.New(),
		WishlistID: w.ID,
		ProductID:  productID,
		Name:       name,
		UnitPrice:  unitPrice,
	}
	if err := s.store.AddWishlistItem(ctx, item); err != nil {
		return nil, err
	}
	return s.store.GetOrCreateWishlist(ctx, userID)
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Wishlist, error) {
	w, err := s.store.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	n, err := s.store.RemoveWishlistItem(ctx, w.ID, productID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.store.GetOrCreateWishlist(ctx, userID)
}

// MoveToCart moves a wished item into the user's cart in one transaction.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	w, err := s.store.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetWishlistItem(ctx, w.ID, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		cart, err := q.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		cartItem := &domain.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
		}
		if err := q.UpsertCartItem(ctx, cartItem); err != nil {
			return err
		}
		_, err = q.RemoveWishlistItem(ctx, w.ID, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetOrCreateCart(ctx, userID)
}
