package coupon

import (
	"fmt"
	"math"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"
)

// Calculator computes monetary discounts from a coupon's type and value.
// It is pure: no storage access, safe for concurrent use.
type Calculator struct {
	deliveryFeeCredit float64
}

// NewCalculator creates a discount calculator. deliveryFeeCredit is the flat
// amount credited by FREE_DELIVERY coupons.
func NewCalculator(deliveryFeeCredit float64) *Calculator {
	return &Calculator{deliveryFeeCredit: deliveryFeeCredit}
}

// Compute maps (type, value, order value) to a discount amount.
// The amount is clamped so it never exceeds the order value, then rounded
// half-up to 2 decimal places as the single final step.
func (c *Calculator) Compute(couponType model.CouponType, value, orderValue float64) (float64, error) {
	var amount float64
	switch couponType {
	case model.CouponTypePercentage:
		amount = orderValue * value / 100
	case model.CouponTypeFixed:
		amount = value
	case model.CouponTypeFreeDelivery:
		amount = c.deliveryFeeCredit
	default:
		return 0, fmt.Errorf("unknown coupon type: %q", couponType)
	}

	// A discount can never exceed the order's value.
	amount = math.Min(amount, orderValue)

	return roundHalfUp(amount), nil
}

// roundHalfUp rounds to 2 decimal places, halves away from zero. Amounts are
// non-negative here, so this is round-half-up.
func roundHalfUp(amount float64) float64 {
	return math.Round(amount*100) / 100
}
