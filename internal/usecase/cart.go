package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// couponRedeemer is the slice of CouponService the checkout path needs.
type couponRedeemer interface {
	Redeem(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error)
}

type CartService struct {
	store    repository.Store
	coupons  couponRedeemer
	shipping *ShippingService
}

func NewCartService(store repository.Store, coupons couponRedeemer, shipping *ShippingService) *CartService {
	return &CartService{store: store, coupons: coupons, shipping: shipping}
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return s.store.GetOrCreateCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, name string, unitPrice float64, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return nil, errors.New("item quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, errors.New("item price must not be negative")
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &domain.CartItem{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
	}
	if err := s.store.UpsertCartItem(ctx, item); err != nil {
		return nil, err
	}
	return s.store.GetOrCreateCart(ctx, userID)
}

// UpdateItem sets an item's quantity; zero or less removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*domain.Cart, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var n int64
	if qty <= 0 {
		n, err = s.store.RemoveCartItem(ctx, cart.ID, productID)
	} else {
		n, err = s.store.UpdateCartItemQuantity(ctx, cart.ID, productID, qty)
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.store.GetOrCreateCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	return s.UpdateItem(ctx, userID, productID, 0)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.store.ClearCart(ctx, cart.ID)
}

// CheckoutSummary is the order summary returned when a cart is checked out.
type CheckoutSummary struct {
	OrderID      uuid.UUID `json:"order_id"`
	Subtotal     float64   `json:"subtotal"`
	CouponCode   string    `json:"coupon_code,omitempty"`
	Discount     float64   `json:"discount"`
	ShippingRate float64   `json:"shipping_rate"`
	Total        float64   `json:"total"`
}

// Checkout prices the cart, redeems the coupon if one is given (validity is
// checked before the discount is computed), quotes the chosen shipping
// method and clears the cart. The shipping method is vetted before the
// coupon is redeemed: redemption consumes a use, so it must be the last
// step that can reject the checkout.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*CheckoutSummary, error) {
	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var method *domain.ShippingMethod
	if shippingMethodID != uuid.Nil {
		method, err = s.shipping.Get(ctx, shippingMethodID)
		if err != nil {
			return nil, err
		}
		if !method.IsActive || !method.AvailableFor(country) {
			return nil, domain.ErrShippingUnavailable
		}
	}

	summary := &CheckoutSummary{
		OrderID:  uuid.New(),
		Subtotal: cart.Total(),
	}

	if couponCode != "" {
		redemption, err := s.coupons.Redeem(ctx, couponCode, userID, summary.OrderID, summary.Subtotal)
		if err != nil {
			return nil, err
		}
		summary.CouponCode = normalizeCode(couponCode)
		summary.Discount = redemption.Discount
	}

	merchandise := payable(summary.Subtotal, summary.Discount)

	if method != nil {
		summary.ShippingRate = method.Quote(merchandise)
	}
	summary.Total = merchandise + summary.ShippingRate

	// The order stands once the coupon is consumed; a failed cart wipe must
	// not fail the checkout.
	if err := s.store.ClearCart(ctx, cart.ID); err != nil {
		zlog.Warn().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to clear cart after checkout")
	}
	return summary, nil
}
