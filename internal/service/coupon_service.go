package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/coupon"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
	"github.com/Syxh0wN/api-food-delivery-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo     repository.CouponRepository
	redemptionRepo repository.RedemptionRepository
	storeRepo      repository.StoreRepository
	calculator     *coupon.Calculator
	maxPageSize    int
	logger         zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(
	couponRepo repository.CouponRepository,
	redemptionRepo repository.RedemptionRepository,
	storeRepo repository.StoreRepository,
	calculator *coupon.Calculator,
	maxPageSize int,
	logger zerolog.Logger,
) CouponService {
	return &couponService{
		couponRepo:     couponRepo,
		redemptionRepo: redemptionRepo,
		storeRepo:      storeRepo,
		calculator:     calculator,
		maxPageSize:    maxPageSize,
		logger:         logger.With().Str("service", "coupon").Logger(),
		now:            time.Now,
	}
}

// Create registers a new coupon definition.
func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil {
		return nil, fmt.Errorf("create coupon request is nil")
	}

	if req.Code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid coupon type: %q", req.Type)
	}

	if req.Value < 0.01 {
		return nil, fmt.Errorf("coupon value must be at least 0.01")
	}

	if req.MinOrderValue != nil && *req.MinOrderValue < 0 {
		return nil, fmt.Errorf("minimum order value cannot be negative")
	}

	if req.MaxUses != nil && *req.MaxUses < 1 {
		return nil, fmt.Errorf("max uses must be at least 1")
	}

	if !req.ValidFrom.Before(req.ValidUntil) {
		s.logger.Warn().
			Time("valid_from", req.ValidFrom).
			Time("valid_until", req.ValidUntil).
			Msg("invalid coupon date range")
		return nil, model.ErrInvalidDateRange
	}

	if req.StoreID != nil {
		exists, err := s.storeRepo.Exists(ctx, *req.StoreID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify store: %w", err)
		}
		if !exists {
			s.logger.Warn().Str("store_id", req.StoreID.String()).Msg("coupon references unknown store")
			return nil, model.ErrStoreNotFound
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now()
	c := &model.Coupon{
		ID:            uuid.New(),
		Code:          model.NormalizeCode(req.Code),
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		MaxUses:       req.MaxUses,
		UsedCount:     0,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		StoreID:       req.StoreID,
		IsActive:      isActive,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Str("code", c.Code).
		Str("type", string(c.Type)).
		Msg("coupon created")

	return c, nil
}

// Update applies a partial update to an existing coupon definition.
// Fields left nil in the request are preserved; used_count is never touched.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	if req == nil {
		return nil, fmt.Errorf("update coupon request is nil")
	}

	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}

	if req.Code != nil {
		if *req.Code == "" {
			return nil, fmt.Errorf("coupon code cannot be empty")
		}
		c.Code = model.NormalizeCode(*req.Code)
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("invalid coupon type: %q", *req.Type)
		}
		c.Type = *req.Type
	}
	if req.Value != nil {
		if *req.Value < 0.01 {
			return nil, fmt.Errorf("coupon value must be at least 0.01")
		}
		c.Value = *req.Value
	}
	if req.MinOrderValue != nil {
		if *req.MinOrderValue < 0 {
			return nil, fmt.Errorf("minimum order value cannot be negative")
		}
		c.MinOrderValue = req.MinOrderValue
	}
	if req.MaxUses != nil {
		if *req.MaxUses < 1 {
			return nil, fmt.Errorf("max uses must be at least 1")
		}
		c.MaxUses = req.MaxUses
	}
	if req.ValidFrom != nil {
		c.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		c.ValidUntil = *req.ValidUntil
	}
	if req.StoreID != nil {
		exists, err := s.storeRepo.Exists(ctx, *req.StoreID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify store: %w", err)
		}
		if !exists {
			return nil, model.ErrStoreNotFound
		}
		c.StoreID = req.StoreID
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	// The resulting window must still be well-formed.
	if !c.ValidFrom.Before(c.ValidUntil) {
		s.logger.Warn().
			Str("coupon_id", id.String()).
			Time("valid_from", c.ValidFrom).
			Time("valid_until", c.ValidUntil).
			Msg("update would produce invalid date range")
		return nil, model.ErrInvalidDateRange
	}

	c.UpdatedAt = s.now()

	if err := s.couponRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("coupon_id", c.ID.String()).Msg("coupon updated")

	return c, nil
}

// Delete removes a coupon definition. The intended retirement path is
// isActive=false; deletion is administrative cleanup and leaves redemption
// history behind.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.couponRepo.Delete(ctx, id)
}

// GetByID retrieves a coupon by ID.
func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

// GetByCode retrieves a coupon by code, case-insensitively.
func (s *couponService) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return s.couponRepo.GetByCode(ctx, code)
}

// List retrieves coupons matching the filter with their derived status.
func (s *couponService) List(ctx context.Context, filter repository.CouponFilter) ([]model.CouponResponse, error) {
	if filter.Limit <= 0 || filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	coupons, err := s.couponRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]model.CouponResponse, len(coupons))
	for i, c := range coupons {
		responses[i] = model.CouponResponse{
			Coupon: c,
			Status: c.Status(now),
		}
	}

	return responses, nil
}

// Validate checks a coupon against a prospective order. It never mutates
// state, so callers may invoke it speculatively any number of times. A valid
// result is advisory: redemption re-checks the cap atomically.
func (s *couponService) Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error) {
	if req == nil {
		return nil, fmt.Errorf("validate coupon request is nil")
	}

	if req.OrderValue < 0 {
		return nil, fmt.Errorf("order value cannot be negative")
	}

	c, err := s.couponRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &model.ValidationResult{Valid: false, Error: model.ErrCouponNotFound}, nil
	}

	if ruleErr := coupon.Evaluate(c, req.OrderValue, req.StoreID, s.now()); ruleErr != nil {
		s.logger.Debug().
			Str("code", c.Code).
			Str("reason", ruleErr.Code).
			Msg("coupon validation failed")
		return &model.ValidationResult{Valid: false, Coupon: c, Error: ruleErr}, nil
	}

	discount, err := s.calculator.Compute(c.Type, c.Value, req.OrderValue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute discount: %w", err)
	}

	s.logger.Debug().
		Str("code", c.Code).
		Float64("order_value", req.OrderValue).
		Float64("discount", discount).
		Msg("coupon validated")

	return &model.ValidationResult{Valid: true, Discount: discount, Coupon: c}, nil
}

// Redeem durably records one redemption. The ledger, not any earlier
// Validate result, decides whether the coupon is still usable.
func (s *couponService) Redeem(ctx context.Context, req *model.RedeemCouponRequest) (*model.Redemption, error) {
	if req == nil {
		return nil, fmt.Errorf("redeem coupon request is nil")
	}

	if req.DiscountApplied < 0 {
		return nil, fmt.Errorf("discount applied cannot be negative")
	}

	return s.redemptionRepo.Redeem(ctx, req)
}

// Redemptions retrieves the paginated usage history for a coupon.
func (s *couponService) Redemptions(ctx context.Context, couponID uuid.UUID, limit, offset int) ([]model.Redemption, error) {
	if limit <= 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.redemptionRepo.ListByCoupon(ctx, couponID, limit, offset)
}
