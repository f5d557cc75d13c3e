package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CouponType identifies how a coupon's value translates into a discount.
type CouponType string

// Supported coupon types.
const (
	CouponTypePercentage   CouponType = "PERCENTAGE"
	CouponTypeFixed        CouponType = "FIXED"
	CouponTypeFreeDelivery CouponType = "FREE_DELIVERY"
)

// Valid reports whether the coupon type is one of the supported variants.
func (t CouponType) Valid() bool {
	switch t {
	case CouponTypePercentage, CouponTypeFixed, CouponTypeFreeDelivery:
		return true
	}
	return false
}

// CouponStatus is the derived lifecycle state of a coupon. It is computed
// from stored fields at query time and never persisted.
type CouponStatus string

const (
	CouponStatusDisabled  CouponStatus = "DISABLED"
	CouponStatusPending   CouponStatus = "PENDING"
	CouponStatusExpired   CouponStatus = "EXPIRED"
	CouponStatusExhausted CouponStatus = "EXHAUSTED"
	CouponStatusActive    CouponStatus = "ACTIVE"
)

// Coupon represents a promotional code definition.
// Code is stored normalized (upper-case); UsedCount is written exclusively
// by the redemption path.
type Coupon struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Code          string     `json:"code" db:"code"`
	Type          CouponType `json:"type" db:"type"`
	Value         float64    `json:"value" db:"value"`
	MinOrderValue *float64   `json:"minOrderValue,omitempty" db:"min_order_value"`
	MaxUses       *int       `json:"maxUses,omitempty" db:"max_uses"`
	UsedCount     int        `json:"usedCount" db:"used_count"`
	ValidFrom     time.Time  `json:"validFrom" db:"valid_from"`
	ValidUntil    time.Time  `json:"validUntil" db:"valid_until"`
	StoreID       *uuid.UUID `json:"storeId,omitempty" db:"store_id"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	CreatedBy     *uuid.UUID `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// Status derives the coupon's lifecycle state at the given instant.
// Disabled overrides everything; Expired overrides Exhausted.
func (c *Coupon) Status(now time.Time) CouponStatus {
	if !c.IsActive {
		return CouponStatusDisabled
	}
	if now.Before(c.ValidFrom) {
		return CouponStatusPending
	}
	if now.After(c.ValidUntil) {
		return CouponStatusExpired
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return CouponStatusExhausted
	}
	return CouponStatusActive
}

// NormalizeCode canonicalises a coupon code for storage and lookup.
// "save10" and "SAVE10" must resolve to the same coupon.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redemption is one successful application of a coupon to a finalized order.
// Rows are append-only; they survive deletion of the coupon definition.
type Redemption struct {
	ID              uuid.UUID `json:"id" db:"id"`
	CouponID        uuid.UUID `json:"couponId" db:"coupon_id"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	OrderID         uuid.UUID `json:"orderId" db:"order_id"`
	DiscountApplied float64   `json:"discountApplied" db:"discount_applied"`
	UsedAt          time.Time `json:"usedAt" db:"used_at"`
}

// CreateCouponRequest is the payload for creating a coupon definition.
type CreateCouponRequest struct {
	Code          string     `json:"code"`
	Type          CouponType `json:"type"`
	Value         float64    `json:"value"`
	MinOrderValue *float64   `json:"minOrderValue,omitempty"`
	MaxUses       *int       `json:"maxUses,omitempty"`
	ValidFrom     time.Time  `json:"validFrom"`
	ValidUntil    time.Time  `json:"validUntil"`
	StoreID       *uuid.UUID `json:"storeId,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
	CreatedBy     *uuid.UUID `json:"createdBy,omitempty"`
}

// UpdateCouponRequest carries a partial update; nil fields are left untouched.
// UsedCount is deliberately absent: only redemption writes it.
type UpdateCouponRequest struct {
	Code          *string     `json:"code,omitempty"`
	Type          *CouponType `json:"type,omitempty"`
	Value         *float64    `json:"value,omitempty"`
	MinOrderValue *float64    `json:"minOrderValue,omitempty"`
	MaxUses       *int        `json:"maxUses,omitempty"`
	ValidFrom     *time.Time  `json:"validFrom,omitempty"`
	ValidUntil    *time.Time  `json:"validUntil,omitempty"`
	StoreID       *uuid.UUID  `json:"storeId,omitempty"`
	IsActive      *bool       `json:"isActive,omitempty"`
}

// ValidateCouponRequest is the checkout-preview payload.
type ValidateCouponRequest struct {
	Code       string     `json:"code"`
	OrderValue float64    `json:"orderValue"`
	StoreID    *uuid.UUID `json:"storeId,omitempty"`
}

// ValidationResult is the non-mutating outcome of checking a coupon against
// a prospective order. Rule failures are carried in Error, never raised.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Discount float64      `json:"discount"`
	Coupon   *Coupon      `json:"coupon,omitempty"`
	Error    *DomainError `json:"error,omitempty"`
}

// RedeemCouponRequest is the order-finalization payload.
type RedeemCouponRequest struct {
	CouponID        uuid.UUID `json:"couponId"`
	UserID          uuid.UUID `json:"userId"`
	OrderID         uuid.UUID `json:"orderId"`
	DiscountApplied float64   `json:"discountApplied"`
}

// CouponResponse decorates a coupon with its derived status for listings.
type CouponResponse struct {
	Coupon
	Status CouponStatus `json:"status"`
}
