package coupon

import (
	"time"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/google/uuid"
)

// Evaluate runs the applicability rule chain for a loaded coupon against a
// prospective order and returns the first failing rule, or nil when the
// coupon applies. Existence of the coupon (NotFound) is the caller's concern.
//
// Rule order is part of the contract: a disabled, expired coupon reports
// Inactive, not Expired.
func Evaluate(c *model.Coupon, orderValue float64, storeID *uuid.UUID, now time.Time) *model.DomainError {
	if !c.IsActive {
		return model.ErrCouponInactive
	}

	if now.Before(c.ValidFrom) {
		return model.ErrCouponNotYetValid
	}

	if now.After(c.ValidUntil) {
		return model.ErrCouponExpired
	}

	// A store-scoped coupon only applies when the caller shops at that store.
	if c.StoreID != nil {
		if storeID == nil || *storeID != *c.StoreID {
			return model.ErrStoreMismatch
		}
	}

	if c.MinOrderValue != nil && orderValue < *c.MinOrderValue {
		return model.ErrBelowMinimumOrder
	}

	// Advisory only: the redemption ledger re-checks the cap atomically at
	// write time, so this result may be stale by the time the order finalizes.
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return model.ErrUsageExceeded
	}

	return nil
}
