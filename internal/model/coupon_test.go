package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("save10"))
	assert.Equal(t, "SAVE10", NormalizeCode("SAVE10"))
	assert.Equal(t, "SAVE10", NormalizeCode("  Save10 "))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestCouponType_Valid(t *testing.T) {
	assert.True(t, CouponTypePercentage.Valid())
	assert.True(t, CouponTypeFixed.Valid())
	assert.True(t, CouponTypeFreeDelivery.Valid())
	assert.False(t, CouponType("BOGOF").Valid())
	assert.False(t, CouponType("").Valid())
}

func TestCoupon_Status(t *testing.T) {
	now := time.Now()
	maxUses := 2

	tests := []struct {
		name     string
		coupon   Coupon
		expected CouponStatus
	}{
		{
			name: "active",
			coupon: Coupon{
				IsActive:   true,
				ValidFrom:  now.Add(-time.Hour),
				ValidUntil: now.Add(time.Hour),
			},
			expected: CouponStatusActive,
		},
		{
			name: "pending before window opens",
			coupon: Coupon{
				IsActive:   true,
				ValidFrom:  now.Add(time.Hour),
				ValidUntil: now.Add(2 * time.Hour),
			},
			expected: CouponStatusPending,
		},
		{
			name: "expired after window closes",
			coupon: Coupon{
				IsActive:   true,
				ValidFrom:  now.Add(-2 * time.Hour),
				ValidUntil: now.Add(-time.Hour),
			},
			expected: CouponStatusExpired,
		},
		{
			name: "exhausted at cap",
			coupon: Coupon{
				IsActive:   true,
				ValidFrom:  now.Add(-time.Hour),
				ValidUntil: now.Add(time.Hour),
				MaxUses:    &maxUses,
				UsedCount:  2,
			},
			expected: CouponStatusExhausted,
		},
		{
			name: "disabled overrides everything",
			coupon: Coupon{
				IsActive:   false,
				ValidFrom:  now.Add(-2 * time.Hour),
				ValidUntil: now.Add(-time.Hour),
				MaxUses:    &maxUses,
				UsedCount:  2,
			},
			expected: CouponStatusDisabled,
		},
		{
			name: "unlimited uses never exhausts",
			coupon: Coupon{
				IsActive:   true,
				ValidFrom:  now.Add(-time.Hour),
				ValidUntil: now.Add(time.Hour),
				UsedCount:  1_000_000,
			},
			expected: CouponStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coupon.Status(now))
		})
	}
}
