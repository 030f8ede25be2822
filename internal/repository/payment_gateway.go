package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ゲートウェイが決済を拒否した（カード不備など）。通信エラーとは区別する。
var ErrChargeDeclined = errors.New("charge declined")

type ChargeInput struct {
	Amount   decimal.Decimal
	Currency string
	//注文と突き合わせるための付帯情報（セッションID、メールなど）
	Metadata map[string]string
}

type ChargeResult struct {
	//ゲートウェイ側の参照ID
	Reference string
}

// 外部の決済ゲートウェイ。リトライはしない。
type PaymentGateway interface {
	Charge(ctx context.Context, in ChargeInput) (ChargeResult, error)
}
