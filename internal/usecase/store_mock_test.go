package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// mockStore implements repository.Store with overridable function fields.
// ExecTx defaults to running the callback against the mock itself.
type mockStore struct {
	createCouponFn       func(ctx context.Context, c *domain.Coupon) error
	getCouponByCodeFn    func(ctx context.Context, code string) (*domain.Coupon, error)
	listCouponsFn        func(ctx context.Context) ([]domain.Coupon, error)
	updateCouponFn       func(ctx context.Context, c *domain.Coupon) error
	deleteCouponFn       func(ctx context.Context, id uuid.UUID) (string, error)
	consumeCouponFn      func(ctx context.Context, code string) (int64, error)
	countRedemptionsFn   func(ctx context.Context, couponID, userID uuid.UUID) (int, error)
	insertRedemptionFn   func(ctx context.Context, r *domain.Redemption) error
	insertAddressFn      func(ctx context.Context, a *domain.Address) error
	getAddressFn         func(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	listAddressesFn      func(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	updateAddressFn      func(ctx context.Context, a *domain.Address) error
	deleteAddressFn      func(ctx context.Context, id uuid.UUID) (int64, error)
	demoteAddressesFn    func(ctx context.Context, userID uuid.UUID, addrType string, exclude uuid.UUID) (int64, error)
	insertShippingFn     func(ctx context.Context, m *domain.ShippingMethod) error
	getShippingFn        func(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error)
	listShippingFn       func(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error)
	updateShippingFn     func(ctx context.Context, m *domain.ShippingMethod) error
	deleteShippingFn     func(ctx context.Context, id uuid.UUID) (int64, error)
	demoteShippingFn     func(ctx context.Context, exclude uuid.UUID) (int64, error)
	upsertInventoryFn    func(ctx context.Context, i *domain.InventoryItem) error
	getInventoryFn       func(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error)
	adjustStockFn        func(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error)
	reserveStockFn       func(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
	releaseStockFn       func(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
	insertRestockAlertFn func(ctx context.Context, a *domain.RestockAlert) error
	getOrCreateCartFn    func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	upsertCartItemFn     func(ctx context.Context, item *domain.CartItem) error
	updateCartItemQtyFn  func(ctx context.Context, cartID, productID uuid.UUID, qty int) (int64, error)
	removeCartItemFn     func(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	clearCartFn          func(ctx context.Context, cartID uuid.UUID) error
	getOrCreateWishFn    func(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error)
	addWishItemFn        func(ctx context.Context, item *domain.WishlistItem) error
	getWishItemFn        func(ctx context.Context, wishlistID, productID uuid.UUID) (*domain.WishlistItem, error)
	removeWishItemFn     func(ctx context.Context, wishlistID, productID uuid.UUID) (int64, error)
	execTxFn             func(ctx context.Context, fn func(repository.Querier) error) error
}

func (m *mockStore) CreateCoupon(ctx context.Context, c *domain.Coupon) error {
	if m.createCouponFn != nil {
		return m.createCouponFn(ctx, c)
	}
	return nil
}

func (m *mockStore) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if m.getCouponByCodeFn != nil {
		return m.getCouponByCodeFn(ctx, code)
	}
	return &domain.Coupon{Code: code}, nil
}

func (m *mockStore) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	if m.listCouponsFn != nil {
		return m.listCouponsFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) UpdateCoupon(ctx context.Context, c *domain.Coupon) error {
	if m.updateCouponFn != nil {
		return m.updateCouponFn(ctx, c)
	}
	return nil
}

func (m *mockStore) DeleteCoupon(ctx context.Context, id uuid.UUID) (string, error) {
	if m.deleteCouponFn != nil {
		return m.deleteCouponFn(ctx, id)
	}
	return "", nil
}

func (m *mockStore) ConsumeCoupon(ctx context.Context, code string) (int64, error) {
	if m.consumeCouponFn != nil {
		return m.consumeCouponFn(ctx, code)
	}
	return 1, nil
}

func (m *mockStore) CountRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	if m.countRedemptionsFn != nil {
		return m.countRedemptionsFn(ctx, couponID, userID)
	}
	return 0, nil
}

func (m *mockStore) InsertRedemption(ctx context.Context, r *domain.Redemption) error {
	if m.insertRedemptionFn != nil {
		return m.insertRedemptionFn(ctx, r)
	}
	return nil
}

func (m *mockStore) InsertAddress(ctx context.Context, a *domain.Address) error {
	if m.insertAddressFn != nil {
		return m.insertAddressFn(ctx, a)
	}
	return nil
}

func (m *mockStore) GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	if m.getAddressFn != nil {
		return m.getAddressFn(ctx, id)
	}
	return &domain.Address{ID: id}, nil
}

func (m *mockStore) ListAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	if m.listAddressesFn != nil {
		return m.listAddressesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) UpdateAddress(ctx context.Context, a *domain.Address) error {
	if m.updateAddressFn != nil {
		return m.updateAddressFn(ctx, a)
	}
	return nil
}

func (m *mockStore) DeleteAddress(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.deleteAddressFn != nil {
		return m.deleteAddressFn(ctx, id)
	}
	return 1, nil
}

func (m *mockStore) DemoteDefaultAddresses(ctx context.Context, userID uuid.UUID, addrType string, exclude uuid.UUID) (int64, error) {
	if m.demoteAddressesFn != nil {
		return m.demoteAddressesFn(ctx, userID, addrType, exclude)
	}
	return 0, nil
}

func (m *mockStore) InsertShippingMethod(ctx context.Context, sm *domain.ShippingMethod) error {
	if m.insertShippingFn != nil {
		return m.insertShippingFn(ctx, sm)
	}
	return nil
}

func (m *mockStore) GetShippingMethod(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error) {
	if m.getShippingFn != nil {
		return m.getShippingFn(ctx, id)
	}
	return &domain.ShippingMethod{ID: id, IsActive: true}, nil
}

func (m *mockStore) ListShippingMethods(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error) {
	if m.listShippingFn != nil {
		return m.listShippingFn(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockStore) UpdateShippingMethod(ctx context.Context, sm *domain.ShippingMethod) error {
	if m.updateShippingFn != nil {
		return m.updateShippingFn(ctx, sm)
	}
	return nil
}

func (m *mockStore) DeleteShippingMethod(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.deleteShippingFn != nil {
		return m.deleteShippingFn(ctx, id)
	}
	return 1, nil
}

func (m *mockStore) DemoteDefaultShippingMethods(ctx context.Context, exclude uuid.UUID) (int64, error) {
	if m.demoteShippingFn != nil {
		return m.demoteShippingFn(ctx, exclude)
	}
	return 0, nil
}

func (m *mockStore) UpsertInventory(ctx context.Context, i *domain.InventoryItem) error {
	if m.upsertInventoryFn != nil {
		return m.upsertInventoryFn(ctx, i)
	}
	return nil
}

func (m *mockStore) GetInventory(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error) {
	if m.getInventoryFn != nil {
		return m.getInventoryFn(ctx, productID)
	}
	return &domain.InventoryItem{ProductID: productID}, nil
}

func (m *mockStore) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error) {
	if m.adjustStockFn != nil {
		return m.adjustStockFn(ctx, productID, delta)
	}
	return &domain.InventoryItem{ProductID: productID}, nil
}

func (m *mockStore) ReserveStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	if m.reserveStockFn != nil {
		return m.reserveStockFn(ctx, productID, qty)
	}
	return &domain.InventoryItem{ProductID: productID}, nil
}

func (m *mockStore) ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error) {
	if m.releaseStockFn != nil {
		return m.releaseStockFn(ctx, productID, qty)
	}
	return &domain.InventoryItem{ProductID: productID}, nil
}

func (m *mockStore) InsertRestockAlert(ctx context.Context, a *domain.RestockAlert) error {
	if m.insertRestockAlertFn != nil {
		return m.insertRestockAlertFn(ctx, a)
	}
	return nil
}

func (m *mockStore) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if m.getOrCreateCartFn != nil {
		return m.getOrCreateCartFn(ctx, userID)
	}
	return &domain.Cart{ID: uuid.New(), UserID: userID}, nil
}

func (m *mockStore) UpsertCartItem(ctx context.Context, item *domain.CartItem) error {
	if m.upsertCartItemFn != nil {
		return m.upsertCartItemFn(ctx, item)
	}
	return nil
}

func (m *mockStore) UpdateCartItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) (int64, error) {
	if m.updateCartItemQtyFn != nil {
		return m.updateCartItemQtyFn(ctx, cartID, productID, qty)
	}
	return 1, nil
}

func (m *mockStore) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error) {
	if m.removeCartItemFn != nil {
		return m.removeCartItemFn(ctx, cartID, productID)
	}
	return 1, nil
}

func (m *mockStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	if m.clearCartFn != nil {
		return m.clearCartFn(ctx, cartID)
	}
	return nil
}

func (m *mockStore) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error) {
	if m.getOrCreateWishFn != nil {
		return m.getOrCreateWishFn(ctx, userID)
	}
	return &domain.Wishlist{ID: uuid.New(), UserID: userID}, nil
}

func (m *mockStore) AddWishlistItem(ctx context.Context, item *domain.WishlistItem) error {
	if m.addWishItemFn != nil {
		return m.addWishItemFn(ctx, item)
	}
	return nil
}

func (m *mockStore) GetWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (*domain.WishlistItem, error) {
	if m.getWishItemFn != nil {
		return m.getWishItemFn(ctx, wishlistID, productID)
	}
	return &domain.WishlistItem{WishlistID: wishlistID, ProductID: productID}, nil
}

func (m *mockStore) RemoveWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (int64, error) {
	if m.removeWishItemFn != nil {
		return m.removeWishItemFn(ctx, wishlistID, productID)
	}
	return 1, nil
}

func (m *mockStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	if m.execTxFn != nil {
		return m.execTxFn(ctx, fn)
	}
	return fn(m)
}

// recordingPublisher captures emitted events for assertions.
type recordingPublisher struct {
	redeemed []string
	lowStock []uuid.UUID
}

func (p *recordingPublisher) CouponRedeemed(ctx context.Context, code string, r *domain.Redemption) {
	p.redeemed = append(p.redeemed, code)
}

func (p *recordingPublisher) LowStock(ctx context.Context, item *domain.InventoryItem) {
	p.lowStock = append(p.lowStock, item.ProductID)
}
