package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	DiscountType  DiscountType    `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_value"`
	ExpiryDate    time.Time       `gorm:"not null" json:"expiry_date"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 有効＝is_activeかつ期限内（当日までOK）
func (c Coupon) ValidAt(now time.Time) bool {
	return c.IsActive && !now.After(c.ExpiryDate)
}

// 割引額を計算する。タイプごとの関数に振り分ける。
// 戻り値は必ず 0 <= discount <= subtotal。
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case DiscountTypePercentage:
		return percentageDiscount(subtotal, c.DiscountValue)
	case DiscountTypeFixed:
		return fixedDiscount(subtotal, c.DiscountValue)
	default:
		return decimal.Zero
	}
}

// subtotal * value / 100（小数2桁に丸め、subtotalで頭打ち）
func percentageDiscount(subtotal, value decimal.Decimal) decimal.Decimal {
	d := subtotal.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
	return clampDiscount(d, subtotal)
}

// 固定額（subtotalで頭打ち）
func fixedDiscount(subtotal, value decimal.Decimal) decimal.Decimal {
	return clampDiscount(value, subtotal)
}

func clampDiscount(d, subtotal decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
