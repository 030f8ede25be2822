package model_test

import (
	"testing"
	"time"

	"shop/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_ValidAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		coupon model.Coupon
		want   bool
	}{
		{
			name:   "有効（期限内）",
			coupon: model.Coupon{IsActive: true, ExpiryDate: now.Add(24 * time.Hour)},
			want:   true,
		},
		{
			name:   "有効（ちょうど期限）",
			coupon: model.Coupon{IsActive: true, ExpiryDate: now},
			want:   true,
		},
		{
			name:   "期限切れ",
			coupon: model.Coupon{IsActive: true, ExpiryDate: now.Add(-time.Second)},
			want:   false,
		},
		{
			name:   "無効化済み",
			coupon: model.Coupon{IsActive: false, ExpiryDate: now.Add(24 * time.Hour)},
			want:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coupon.ValidAt(now))
		})
	}
}

func TestCoupon_DiscountFor_Percentage(t *testing.T) {
	c := model.Coupon{DiscountType: model.DiscountTypePercentage, DiscountValue: dec("10")}

	got := c.DiscountFor(dec("30.00"))
	assert.True(t, got.Equal(dec("3.00")), "got=%s", got)
}

func TestCoupon_DiscountFor_PercentageRounds(t *testing.T) {
	c := model.Coupon{DiscountType: model.DiscountTypePercentage, DiscountValue: dec("15")}

	//10.99 * 15% = 1.6485 → 1.65
	got := c.DiscountFor(dec("10.99"))
	assert.True(t, got.Equal(dec("1.65")), "got=%s", got)
}

func TestCoupon_DiscountFor_FullPercentage(t *testing.T) {
	c := model.Coupon{DiscountType: model.DiscountTypePercentage, DiscountValue: dec("100")}

	got := c.DiscountFor(dec("42.00"))
	assert.True(t, got.Equal(dec("42.00")))
}

func TestCoupon_DiscountFor_FixedClampedToSubtotal(t *testing.T) {
	c := model.Coupon{DiscountType: model.DiscountTypeFixed, DiscountValue: dec("50.00")}

	got := c.DiscountFor(dec("12.00"))
	assert.True(t, got.Equal(dec("12.00")))
}

func TestCoupon_DiscountFor_UnknownTypeIsZero(t *testing.T) {
	c := model.Coupon{DiscountType: "mystery", DiscountValue: dec("10")}

	got := c.DiscountFor(dec("100.00"))
	assert.True(t, got.IsZero())
}
