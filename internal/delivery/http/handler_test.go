package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type mockCouponAPI struct {
	createFn    func(ctx context.Context, c *domain.Coupon) error
	getByCodeFn func(ctx context.Context, code string) (*domain.Coupon, error)
	listFn      func(ctx context.Context) ([]domain.Coupon, error)
	updateFn    func(ctx context.Context, c *domain.Coupon) error
	deleteFn    func(ctx context.Context, id uuid.UUID) error
	previewFn   func(ctx context.Context, code string, cartTotal float64) (*usecase.PreviewResult, error)
	redeemFn    func(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error)
}

func (m *mockCouponAPI) Create(ctx context.Context, c *domain.Coupon) error {
	return m.createFn(ctx, c)
}

func (m *mockCouponAPI) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return m.getByCodeFn(ctx, code)
}

func (m *mockCouponAPI) List(ctx context.Context) ([]domain.Coupon, error) {
	return m.listFn(ctx)
}

func (m *mockCouponAPI) Update(ctx context.Context, c *domain.Coupon) error {
	return m.updateFn(ctx, c)
}

func (m *mockCouponAPI) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockCouponAPI) Preview(ctx context.Context, code string, cartTotal float64) (*usecase.PreviewResult, error) {
	return m.previewFn(ctx, code, cartTotal)
}

func (m *mockCouponAPI) Redeem(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error) {
	return m.redeemFn(ctx, code, userID, orderID, cartTotal)
}

type mockAddressAPI struct {
	setDefaultFn func(ctx context.Context, id uuid.UUID) (*domain.Address, error)
}

func (m *mockAddressAPI) Create(ctx context.Context, a *domain.Address) error { return nil }

func (m *mockAddressAPI) Get(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAddressAPI) List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	return nil, nil
}

func (m *mockAddressAPI) Update(ctx context.Context, a *domain.Address) error { return nil }

func (m *mockAddressAPI) SetDefault(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	return m.setDefaultFn(ctx, id)
}

func (m *mockAddressAPI) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type mockInventoryAPI struct {
	reserveFn func(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
}

func (m *mockInventoryAPI) Upsert(ctx context.Context, i *domain.InventoryItem) error { return nil }

func (m *mockInventoryAPI) Get(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (m *mockInventoryAPI) Adjust(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (m *mockInventoryAPI) Reserve(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	return m.reserveFn(ctx, productID, qty)
}

func (m *mockInventoryAPI) Release(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

type mockCartAPI struct {
	checkoutFn func(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*usecase.CheckoutSummary, error)
}

func (m *mockCartAPI) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID}, nil
}

func (m *mockCartAPI) AddItem(ctx context.Context, userID, productID uuid.UUID, name string, unitPrice float64, qty int) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID}, nil
}

func (m *mockCartAPI) UpdateItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID}, nil
}

func (m *mockCartAPI) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	return &domain.Cart{UserID: userID}, nil
}

func (m *mockCartAPI) Clear(ctx context.Context, userID uuid.UUID) error { return nil }

func (m *mockCartAPI) Checkout(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*usecase.CheckoutSummary, error) {
	return m.checkoutFn(ctx, userID, couponCode, country, shippingMethodID)
}

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateCoupon(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		createFn: func(ctx context.Context, c *domain.Coupon) error { return nil },
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons", CouponRequest{
		Code:  "SUMMER10",
		Type:  "percentage",
		Value: 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCoupon_Duplicate(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		createFn: func(ctx context.Context, c *domain.Coupon) error { return domain.ErrDuplicateCode },
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons", CouponRequest{Code: "SUMMER10"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateCoupon_BadBody(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{}}

	req := httptest.NewRequest(http.MethodPost, "/api/coupons", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateCoupon_BodyCodeIgnored(t *testing.T) {
	var updatedCode string
	h := &Handler{coupons: &mockCouponAPI{
		getByCodeFn: func(ctx context.Context, code string) (*domain.Coupon, error) {
			return &domain.Coupon{ID: uuid.New(), Code: "SAVE"}, nil
		},
		updateFn: func(ctx context.Context, c *domain.Coupon) error {
			updatedCode = c.Code
			return nil
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPut, "/api/coupons/SAVE", CouponRequest{
		Code:  "NEW",
		Type:  "fixed",
		Value: 5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updatedCode != "SAVE" {
		t.Fatalf("the path code is the identity, update saw %q", updatedCode)
	}

	var body domain.Coupon
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Code != "SAVE" {
		t.Fatalf("response must echo the stored code, got %q", body.Code)
	}
}

func TestGetCoupon_NotFound(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		getByCodeFn: func(ctx context.Context, code string) (*domain.Coupon, error) {
			return nil, domain.ErrNotFound
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodGet, "/api/coupons/MISSING", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPreviewCoupon_BelowMinimum(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		previewFn: func(ctx context.Context, code string, cartTotal float64) (*usecase.PreviewResult, error) {
			return nil, domain.ErrMinPurchase
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons/preview", PreviewRequest{Code: "SAVE", CartTotal: 10})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRedeemCoupon(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		redeemFn: func(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error) {
			return &domain.Redemption{ID: uuid.New(), Discount: 12.5}, nil
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons/redeem", RedeemRequest{
		Code:      "SAVE",
		UserID:    uuid.New(),
		OrderID:   uuid.New(),
		CartTotal: 100,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body domain.Redemption
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Discount != 12.5 {
		t.Fatalf("expected discount 12.5, got %v", body.Discount)
	}
}

func TestRedeemCoupon_MissingIDs(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons/redeem", RedeemRequest{Code: "SAVE"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRedeemCoupon_Exhausted(t *testing.T) {
	h := &Handler{coupons: &mockCouponAPI{
		redeemFn: func(ctx context.Context, code string, userID, orderID uuid.UUID, cartTotal float64) (*domain.Redemption, error) {
			return nil, domain.ErrCouponExhausted
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/coupons/redeem", RedeemRequest{
		Code:    "SAVE",
		UserID:  uuid.New(),
		OrderID: uuid.New(),
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSetDefaultAddress(t *testing.T) {
	id := uuid.New()
	h := &Handler{addresses: &mockAddressAPI{
		setDefaultFn: func(ctx context.Context, got uuid.UUID) (*domain.Address, error) {
			if got != id {
				t.Fatalf("expected id %s, got %s", id, got)
			}
			return &domain.Address{ID: got, IsDefault: true}, nil
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/addresses/"+id.String()+"/default", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSetDefaultAddress_BadID(t *testing.T) {
	h := &Handler{addresses: &mockAddressAPI{}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/addresses/not-a-uuid/default", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReserveStock_Insufficient(t *testing.T) {
	h := &Handler{inventory: &mockInventoryAPI{
		reserveFn: func(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
			return nil, domain.ErrInsufficientStock
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/inventory/"+uuid.NewString()+"/reserve", QuantityRequest{Quantity: 5})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCheckout(t *testing.T) {
	h := &Handler{carts: &mockCartAPI{
		checkoutFn: func(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*usecase.CheckoutSummary, error) {
			return &usecase.CheckoutSummary{OrderID: uuid.New(), Subtotal: 100, Discount: 10, Total: 98}, nil
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/carts/"+uuid.NewString()+"/checkout", CheckoutRequest{
		CouponCode: "SAVE",
		Country:    "US",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary usecase.CheckoutSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.Total != 98 {
		t.Fatalf("expected total 98, got %v", summary.Total)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	h := &Handler{carts: &mockCartAPI{
		checkoutFn: func(ctx context.Context, userID uuid.UUID, couponCode, country string, shippingMethodID uuid.UUID) (*usecase.CheckoutSummary, error) {
			return nil, domain.ErrEmptyCart
		},
	}}

	rec := doJSON(t, newRouter(h), http.MethodPost, "/api/carts/"+uuid.NewString()+"/checkout", CheckoutRequest{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
