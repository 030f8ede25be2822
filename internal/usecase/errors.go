package usecase

import (
	"errors"
	"fmt"
	"time"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カート/チェックアウトのエラー。handlerがステータスに変換する。
// どれもリクエスト単位で回復できる（プロセスは落とさない）。
var (
	//不明・無効・期限切れクーポン
	ErrInvalidCoupon = errors.New("invalid coupon")
	//空カートでのチェックアウト
	ErrEmptyCart = errors.New("cart is empty")
	//追加時点からカタログ価格が変わっていた
	ErrPriceMismatch = errors.New("price has changed")
	//決済が通らなかった（リトライはしない）
	ErrPaymentFailed = errors.New("payment failed")
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
