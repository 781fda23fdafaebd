package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type couponAPI interface {
	Create(ctx context.Context, c *domain.Coupon) error
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, c *domain.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	Preview(ctx context.Context, code string, cartTotal float64) (*usecase.PreviewResult, error)
	Redeem(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error)
}

type addressAPI interface {
	Create(ctx context.Context, a *domain.Address) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	Update(ctx context.Context, a *domain.Address) error
	SetDefault(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type shippingAPI interface {
	Create(ctx context.Context, m *domain.ShippingMethod) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error)
	Update(ctx context.Context, m *domain.ShippingMethod) error
	SetDefault(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Quote(ctx context.Context, country string, orderTotal float64) ([]usecase.QuoteOption, error)
}

type inventoryAPI interface {
	Upsert(ctx context.Context, i *domain.InventoryItem) error
	Get(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error)
	Adjust(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error)
	Reserve(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
	Release(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
}

type cartAPI interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, name string, unitPrice float64, qty int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Checkout(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*usecase.CheckoutSummary, error)
}

type wishlistAPI interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, name string, unitPrice float64) (*domain.Wishlist, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Wishlist, error)
	MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error)
}

type Handler struct {
	coupons   couponAPI
	addresses addressAPI
	shipping  shippingAPI
	inventory inventoryAPI
	carts     cartAPI
	wishlists wishlistAPI
}

func NewHandler(
	coupons *usecase.CouponService,
	addresses *usecase.AddressService,
	shipping *usecase.ShippingService,
	inventory *usecase.InventoryService,
	carts *usecase.CartService,
	wishlists *usecase.WishlistService,
) *Handler {
	return &Handler{
		coupons:   coupons,
		addresses: addresses,
		shipping:  shipping,
		inventory: inventory,
		carts:     carts,
		wishlists: wishlists,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/coupons", func(r chi.Router) {
			r.Post("/", h.CreateCoupon)
			r.Get("/", h.ListCoupons)
			r.Post("/preview", h.PreviewCoupon)
			r.Post("/redeem", h.RedeemCoupon)
			r.Get("/{code}", h.GetCoupon)
			r.Put("/{code}", h.UpdateCoupon)
			r.Delete("/{code}", h.DeleteCoupon)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Post("/", h.CreateAddress)
			r.Get("/", h.ListAddresses)
			r.Get("/{id}", h.GetAddress)
			r.Put("/{id}", h.UpdateAddress)
			r.Post("/{id}/default", h.SetDefaultAddress)
			r.Delete("/{id}", h.DeleteAddress)
		})

		r.Route("/shipping-methods", func(r chi.Router) {
			r.Post("/", h.CreateShippingMethod)
			r.Get("/", h.ListShippingMethods)
			r.Get("/quote", h.QuoteShipping)
			r.Get("/{id}", h.GetShippingMethod)
			r.Put("/{id}", h.UpdateShippingMethod)
			r.Post("/{id}/default", h.SetDefaultShippingMethod)
			r.Delete("/{id}", h.DeleteShippingMethod)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Put("/", h.UpsertInventory)
			r.Get("/{productID}", h.GetInventory)
			r.Post("/{productID}/adjust", h.AdjustStock)
			r.Post("/{productID}/reserve", h.ReserveStock)
			r.Post("/{productID}/release", h.ReleaseStock)
		})

		r.Route("/carts/{userID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{productID}", h.UpdateCartItem)
			r.Delete("/items/{productID}", h.RemoveCartItem)
			r.Post("/checkout", h.Checkout)
		})

		r.Route("/wishlists/{userID}", func(r chi.Router) {
			r.Get("/", h.GetWishlist)
			r.Post("/items", h.AddWishlistItem)
			r.Delete("/items/{productID}", h.RemoveWishlistItem)
			r.Post("/items/{productID}/move-to-cart", h.MoveWishlistItemToCart)
		})
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrDuplicateCode):
		status, message = http.StatusConflict, "coupon code already exists"
	case errors.Is(err, domain.ErrCouponExhausted):
		status, message = http.StatusConflict, "coupon usage limit reached"
	case errors.Is(err, domain.ErrRedemptionLimit):
		status, message = http.StatusConflict, "per-user redemption limit reached"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, message = http.StatusConflict, "insufficient stock"
	case errors.Is(err, domain.ErrConstraintViolation):
		status, message = http.StatusConflict, "conflicting write, retry the request"
	case errors.Is(err, domain.ErrCouponInactive):
		status, message = http.StatusUnprocessableEntity, "coupon is not valid"
	case errors.Is(err, domain.ErrMinPurchase):
		status, message = http.StatusUnprocessableEntity, "cart total below minimum purchase"
	case errors.Is(err, domain.ErrEmptyCart):
		status, message = http.StatusUnprocessableEntity, "cart is empty"
	case errors.Is(err, domain.ErrShippingUnavailable):
		status, message = http.StatusUnprocessableEntity, "shipping method not available for destination"
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeInvalid(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func urlUUID(r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeInvalid(w, "invalid request body")
		return false
	}
	return true
}
