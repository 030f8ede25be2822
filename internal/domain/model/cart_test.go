package model_test

import (
	"testing"

	"shop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(productID int64, price string, qty int64) model.CartLine {
	return model.CartLine{
		ProductID: productID,
		Name:      "item",
		UnitPrice: dec(price),
		Quantity:  qty,
	}
}

func TestCart_NewCartIsEmpty(t *testing.T) {
	c := model.NewCart()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalQty)
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.FinalPrice.IsZero())
}

func TestCart_SetLine_AccumulatesTotals(t *testing.T) {
	c := model.NewCart()

	c.SetLine(line(1, "10.00", 3))
	c.SetLine(line(2, "4.50", 2))
	c.Recompute()

	assert.Equal(t, int64(5), c.TotalQty)
	assert.True(t, c.Subtotal.Equal(dec("39.00")), "subtotal=%s", c.Subtotal)
	assert.True(t, c.FinalPrice.Equal(dec("39.00")))
}

func TestCart_SetLine_ZeroQuantityRemoves(t *testing.T) {
	c := model.NewCart()

	c.SetLine(line(1, "10.00", 2))
	c.SetLine(line(1, "10.00", 0))
	c.Recompute()

	//数量0の明細は持たない
	_, ok := c.Line(1)
	assert.False(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestCart_RemoveLine_MissingIsNoop(t *testing.T) {
	c := model.NewCart()
	c.SetLine(line(1, "10.00", 1))

	c.RemoveLine(99)
	c.Recompute()

	assert.Equal(t, int64(1), c.TotalQty)
}

func TestCart_Recompute_PercentageCoupon(t *testing.T) {
	c := model.NewCart()
	c.SetLine(line(1, "10.00", 3))
	c.Coupon = &model.AppliedCoupon{
		Code:  "SAVE10",
		Type:  model.DiscountTypePercentage,
		Value: dec("10"),
	}
	c.Recompute()

	assert.True(t, c.Discount.Equal(dec("3.00")), "discount=%s", c.Discount)
	assert.True(t, c.FinalPrice.Equal(dec("27.00")), "final=%s", c.FinalPrice)
}

func TestCart_Recompute_FixedCouponExceedingSubtotal(t *testing.T) {
	c := model.NewCart()
	c.SetLine(line(1, "3.00", 1))
	c.Coupon = &model.AppliedCoupon{
		Code:  "FIVE",
		Type:  model.DiscountTypeFixed,
		Value: dec("5.00"),
	}
	c.Recompute()

	//割引は小計で頭打ち。0未満にはならない
	assert.True(t, c.Discount.Equal(dec("3.00")))
	assert.True(t, c.FinalPrice.IsZero())
	assert.False(t, c.FinalPrice.IsNegative())
}

func TestCart_Recompute_DiscountFollowsMutations(t *testing.T) {
	c := model.NewCart()
	c.SetLine(line(1, "20.00", 2))
	c.Coupon = &model.AppliedCoupon{
		Code:  "SAVE10",
		Type:  model.DiscountTypePercentage,
		Value: dec("10"),
	}
	c.Recompute()
	assert.True(t, c.FinalPrice.Equal(dec("36.00")))

	//明細を減らしたら割引も追従する
	c.SetLine(line(1, "20.00", 1))
	c.Recompute()

	assert.True(t, c.Discount.Equal(dec("2.00")))
	assert.True(t, c.FinalPrice.Equal(dec("18.00")))
}

func TestCart_Clear_DropsLinesAndCoupon(t *testing.T) {
	c := model.NewCart()
	c.SetLine(line(1, "10.00", 2))
	c.Coupon = &model.AppliedCoupon{Code: "X", Type: model.DiscountTypeFixed, Value: dec("1.00")}
	c.Recompute()

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Coupon)
	assert.True(t, c.FinalPrice.IsZero())
}
