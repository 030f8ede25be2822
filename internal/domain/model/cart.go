package model

import "github.com/shopspring/decimal"

// セッションに保存するカート。DBには持たない。
// JSONにしてセッションストアへ丸ごと書き戻す。
type Cart struct {
	//product_id → 明細。数量0の明細は持たない。
	Lines      map[int64]CartLine `json:"lines"`
	TotalQty   int64              `json:"total_qty"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Coupon     *AppliedCoupon     `json:"coupon,omitempty"`
	Discount   decimal.Decimal    `json:"discount"`
	FinalPrice decimal.Decimal    `json:"final_price"`
}

// カートの明細。追加時点の価格を必ず保存。
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// 適用中クーポンのスナップショット。
// 再計算に必要なタイプと値も一緒に持つ。
type AppliedCoupon struct {
	Code  string          `json:"code"`
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

func NewCart() *Cart {
	c := &Cart{Lines: map[int64]CartLine{}}
	c.Recompute()
	return c
}

// 明細1件を返す。
func (c *Cart) Line(productID int64) (CartLine, bool) {
	l, ok := c.Lines[productID]
	return l, ok
}

// 明細を置く。qty<=0は削除として扱う。
func (c *Cart) SetLine(l CartLine) {
	if c.Lines == nil {
		c.Lines = map[int64]CartLine{}
	}
	if l.Quantity <= 0 {
		delete(c.Lines, l.ProductID)
		return
	}
	c.Lines[l.ProductID] = l
}

func (c *Cart) RemoveLine(productID int64) {
	delete(c.Lines, productID)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// 全明細とクーポンをリセットする。
func (c *Cart) Clear() {
	c.Lines = map[int64]CartLine{}
	c.Coupon = nil
	c.Recompute()
}

// 合計を再計算する。ミューテーション後は必ず呼ぶ。
// final = max(subtotal - discount, 0) を常に保証する。
func (c *Cart) Recompute() {
	var qty int64
	subtotal := decimal.Zero

	for _, l := range c.Lines {
		qty += l.Quantity
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}

	c.TotalQty = qty
	c.Subtotal = subtotal

	discount := decimal.Zero
	if c.Coupon != nil {
		coupon := Coupon{DiscountType: c.Coupon.Type, DiscountValue: c.Coupon.Value}
		discount = coupon.DiscountFor(subtotal)
	}
	c.Discount = discount

	final := subtotal.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	c.FinalPrice = final
}
