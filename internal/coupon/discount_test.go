package coupon

import (
	"testing"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(5.00)

	tests := []struct {
		name       string
		couponType model.CouponType
		value      float64
		orderValue float64
		expected   float64
	}{
		{
			name:       "percentage of order value",
			couponType: model.CouponTypePercentage,
			value:      10,
			orderValue: 100,
			expected:   10.00,
		},
		{
			name:       "percentage rounds half up",
			couponType: model.CouponTypePercentage,
			value:      10,
			orderValue: 1.25,
			expected:   0.13,
		},
		{
			name:       "percentage truncates below half",
			couponType: model.CouponTypePercentage,
			value:      10,
			orderValue: 33.33,
			expected:   3.33,
		},
		{
			name:       "hundred percent equals order value",
			couponType: model.CouponTypePercentage,
			value:      100,
			orderValue: 42.50,
			expected:   42.50,
		},
		{
			name:       "fixed amount",
			couponType: model.CouponTypeFixed,
			value:      7.50,
			orderValue: 100,
			expected:   7.50,
		},
		{
			name:       "fixed amount clamped to order value",
			couponType: model.CouponTypeFixed,
			value:      20,
			orderValue: 12.75,
			expected:   12.75,
		},
		{
			name:       "free delivery credits the fee",
			couponType: model.CouponTypeFreeDelivery,
			value:      1, // value is ignored for FREE_DELIVERY
			orderValue: 30,
			expected:   5.00,
		},
		{
			name:       "free delivery clamped to small order",
			couponType: model.CouponTypeFreeDelivery,
			value:      1,
			orderValue: 3.00,
			expected:   3.00,
		},
		{
			name:       "zero order value yields zero discount",
			couponType: model.CouponTypePercentage,
			value:      50,
			orderValue: 0,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := calc.Compute(tt.couponType, tt.value, tt.orderValue)

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, amount, 1e-9)

			// The discount must stay within [0, orderValue] for any input.
			assert.GreaterOrEqual(t, amount, 0.0)
			assert.LessOrEqual(t, amount, tt.orderValue)
		})
	}
}

func TestCalculator_Compute_UnknownType(t *testing.T) {
	calc := NewCalculator(5.00)

	amount, err := calc.Compute(model.CouponType("BOGOF"), 10, 100)

	require.Error(t, err)
	assert.Zero(t, amount)
	assert.Contains(t, err.Error(), "unknown coupon type")
}

func TestCalculator_Compute_DiscountNeverExceedsOrderValue(t *testing.T) {
	calc := NewCalculator(5.00)

	orderValues := []float64{0, 0.01, 0.99, 3, 49.99, 50, 100, 12345.67}
	for _, orderValue := range orderValues {
		for _, couponType := range []model.CouponType{
			model.CouponTypePercentage,
			model.CouponTypeFixed,
			model.CouponTypeFreeDelivery,
		} {
			amount, err := calc.Compute(couponType, 150, orderValue)

			require.NoError(t, err)
			assert.GreaterOrEqual(t, amount, 0.0)
			assert.LessOrEqual(t, amount, orderValue)
		}
	}
}
