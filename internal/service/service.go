package service

import (
	"context"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"

	"github.com/google/uuid"
)

// CouponService defines the coupon engine's operations: registry CRUD, the
// non-mutating validate path, the redemption ledger and listing queries.
type CouponService interface {
	// Create registers a new coupon definition.
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)

	// Update applies a partial update to an existing coupon definition.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error)

	// Delete removes a coupon definition. Redemption history is retained.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves a coupon by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// GetByCode retrieves a coupon by code, case-insensitively.
	// Returns (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// List retrieves coupons matching the filter, with derived status attached.
	List(ctx context.Context, filter repository.CouponFilter) ([]model.CouponResponse, error)

	// Validate checks whether a coupon applies to a prospective order and
	// computes the discount. Non-mutating; rule failures are reported inside
	// the result, never as an error.
	Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error)

	// Redeem durably records one redemption under the usage cap. This is the
	// engine's single mutating, concurrency-critical operation.
	Redeem(ctx context.Context, req *model.RedeemCouponRequest) (*model.Redemption, error)

	// Redemptions retrieves the paginated usage history for a coupon.
	Redemptions(ctx context.Context, couponID uuid.UUID, limit, offset int) ([]model.Redemption, error)
}
