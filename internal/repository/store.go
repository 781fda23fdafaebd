package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

// Querier is the query surface shared by the pool-backed store and
// transaction-scoped handles passed to ExecTx callbacks.
type Querier interface {
	// Coupons and redemptions
	CreateCoupon(ctx context.Context, c *domain.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	UpdateCoupon(ctx context.Context, c *domain.Coupon) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) (string, error)
	ConsumeCoupon(ctx context.Context, code string) (int64, error)
	CountRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int, error)
	InsertRedemption(ctx context.Context, r *domain.Redemption) error

	// Addresses
	InsertAddress(ctx context.Context, a *domain.Address) error
	GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	UpdateAddress(ctx context.Context, a *domain.Address) error
	DeleteAddress(ctx context.Context, id uuid.UUID) (int64, error)
	DemoteDefaultAddresses(ctx context.Context, userID uuid.UUID, addrType string, exclude uuid.UUID) (int64, error)

	// Shipping methods
	InsertShippingMethod(ctx context.Context, m *domain.ShippingMethod) error
	GetShippingMethod(ctx context.Context, id uuid.UUID) (*domain.ShippingMethod, error)
	ListShippingMethods(ctx context.Context, activeOnly bool) ([]domain.ShippingMethod, error)
	UpdateShippingMethod(ctx context.Context, m *domain.ShippingMethod) error
	DeleteShippingMethod(ctx context.Context, id uuid.UUID) (int64, error)
	DemoteDefaultShippingMethods(ctx context.Context, exclude uuid.UUID) (int64, error)

	// Inventory
	UpsertInventory(ctx context.Context, i *domain.InventoryItem) error
	GetInventory(ctx context.Context, productID uuid.UUID) (*domain.InventoryItem, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*domain.InventoryItem, error)
	ReserveStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
	ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) (*domain.InventoryItem, error)
	InsertRestockAlert(ctx context.Context, a *domain.RestockAlert) error

	// Carts
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertCartItem(ctx context.Context, item *domain.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) (int64, error)
	RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	ClearCart(ctx context.Context, cartID uuid.UUID) error

	// Wishlists
	GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*domain.Wishlist, error)
	AddWishlistItem(ctx context.Context, item *domain.WishlistItem) error
	GetWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (*domain.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, wishlistID, productID uuid.UUID) (int64, error)
}

// Store is the persistence collaborator handed to the usecase layer.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements Querier against any DBTX.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

type store struct {
	pool *pgxpool.Pool
	*Queries
}

func New(pool *pgxpool.Pool) Store {
	return &store{
		pool:    pool,
		Queries: NewQueries(pool),
	}
}

func (s *store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
