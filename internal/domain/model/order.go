package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// PENDING → SHIPPED → DELIVERED の順にしか進めない。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// 確定時のスナップショット。作成後は明細もふくめて不変。
type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	//ゲスト注文はnull
	UserID        *int64          `gorm:"index" json:"user_id,omitempty"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CouponCode    string          `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`
	Discount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	//決済ゲートウェイの参照ID
	PaymentRef string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
