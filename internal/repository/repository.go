package repository

import (
	"context"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/google/uuid"
)

// CouponFilter narrows coupon listings.
type CouponFilter struct {
	// StoreID restricts results to coupons scoped to this store.
	StoreID *uuid.UUID

	// ActiveOnly restricts results to coupons whose derived status is Active.
	ActiveOnly bool

	Limit  int
	Offset int
}

// CouponRepository defines data access for coupon definitions. It owns the
// coupons table except for used_count, which only RedemptionRepository writes.
type CouponRepository interface {
	// Create inserts a new coupon definition.
	// Returns model.ErrDuplicateCode if the normalized code already exists.
	Create(ctx context.Context, coupon *model.Coupon) error

	// Update rewrites a coupon's mutable columns (everything except used_count).
	// Returns model.ErrDuplicateCode on a code collision with another coupon,
	// model.ErrCouponNotFound if the coupon does not exist.
	Update(ctx context.Context, coupon *model.Coupon) error

	// Delete removes a coupon definition unconditionally.
	// Returns model.ErrCouponNotFound if the coupon does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves a coupon by its ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// GetByCode retrieves a coupon by its normalized code.
	// Returns (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// List retrieves coupons matching the filter, newest first.
	List(ctx context.Context, filter CouponFilter) ([]model.Coupon, error)
}

// RedemptionRepository defines the redemption ledger. Redeem is the only
// operation in the engine that mutates shared state.
type RedemptionRepository interface {
	// Redeem atomically increments the coupon's used_count and appends a
	// redemption record in a single transaction. The increment only happens
	// if max_uses is unset or used_count < max_uses at write time; otherwise
	// model.ErrUsageExceeded is returned and nothing is committed.
	// Returns model.ErrCouponNotFound if the coupon does not exist.
	Redeem(ctx context.Context, req *model.RedeemCouponRequest) (*model.Redemption, error)

	// ListByCoupon retrieves redemption records for a coupon, newest first.
	ListByCoupon(ctx context.Context, couponID uuid.UUID, limit, offset int) ([]model.Redemption, error)
}

// StoreRepository exposes the slice of the store subsystem the coupon
// engine depends on.
type StoreRepository interface {
	// Exists reports whether a store with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Create inserts a store. Used by seeding and tests.
	Create(ctx context.Context, store *model.Store) error
}
