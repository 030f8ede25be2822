package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"sort"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/rs/zerolog/log"
)

// CheckoutUsecase はカートを注文に確定する。
// 検証 → 決済 → 永続化 → カート破棄 の順で、決済失敗時はカートに触らない。
type CheckoutUsecase struct {
	carts      repo.CartStore
	couponRepo repo.CouponRepository
	gateway    repo.PaymentGateway
	tx         repo.TransactionManager
	clock      Clock
	currency   string
}

func NewCheckoutUsecase(
	carts repo.CartStore,
	couponRepo repo.CouponRepository,
	gateway repo.PaymentGateway,
	tx repo.TransactionManager,
	clock Clock,
	currency string,
) *CheckoutUsecase {
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutUsecase{
		carts:      carts,
		couponRepo: couponRepo,
		gateway:    gateway,
		tx:         tx,
		clock:      clock,
		currency:   currency,
	}
}

type CustomerInfo struct {
	Name  string
	Email string
}

type CheckoutInput struct {
	//ログイン済みならそのユーザーID。ゲストはnil。
	UserID   *int64
	Customer CustomerInfo
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Status        string            `json:"status"`
	Subtotal      string            `json:"subtotal"`
	CouponCode    string            `json:"coupon_code,omitempty"`
	Discount      string            `json:"discount"`
	TotalAmount   string            `json:"total_amount"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// Finalize はチェックアウトを1回分実行する。
//
// 検証フェーズでは明細ごとにカタログの現在価格を引き直して合計を出す。
// セッション内のスナップショット価格と食い違ったらカートを最新価格で
// 書き戻したうえで ErrPriceMismatch（注文も課金もしない）。
func (u *CheckoutUsecase) Finalize(ctx context.Context, sessionID string, in CheckoutInput) (OrderOutput, error) {
	if sessionID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	name := strings.TrimSpace(in.Customer.Name)
	email := strings.TrimSpace(in.Customer.Email)
	if name == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	//カート取得
	cart, err := u.carts.Get(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, ErrEmptyCart
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	if cart.IsEmpty() {
		return OrderOutput{}, ErrEmptyCart
	}

	//現在価格で引き直す
	refreshed, priceChanged, err := u.revalidateLines(ctx, cart)
	if err != nil {
		return OrderOutput{}, err
	}
	if priceChanged {
		//最新価格のカートを見せてから再操作してもらう
		if saveErr := u.carts.Save(ctx, sessionID, refreshed); saveErr != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "session store error")
		}
		return OrderOutput{}, ErrPriceMismatch
	}

	//クーポンの再検証（追加からチェックアウトの間に失効しているかもしれない）
	if refreshed.Coupon != nil {
		coupon, err := u.couponRepo.FindByCode(ctx, refreshed.Coupon.Code)
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, ErrInvalidCoupon
		}
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !coupon.ValidAt(u.clock.Now()) {
			return OrderOutput{}, ErrInvalidCoupon
		}
		//適用後にタイプや値が編集されていても、課金は現在の内容で行う
		refreshed.Coupon = &model.AppliedCoupon{
			Code:  coupon.Code,
			Type:  coupon.DiscountType,
			Value: coupon.DiscountValue,
		}
	}
	refreshed.Recompute()

	//決済。失敗したらここで終わり（カートはそのまま）。
	charge, err := u.gateway.Charge(ctx, repo.ChargeInput{
		Amount:   refreshed.FinalPrice,
		Currency: u.currency,
		Metadata: map[string]string{
			"session_id":     sessionID,
			"customer_email": email,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("charge failed")
		return OrderOutput{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	//注文＋明細を1トランザクションで作る
	now := u.clock.Now()
	couponCode := ""
	if refreshed.Coupon != nil {
		couponCode = refreshed.Coupon.Code
	}

	order := model.Order{
		UserID:        in.UserID,
		CustomerName:  name,
		CustomerEmail: email,
		Status:        model.OrderStatusPending,
		Subtotal:      refreshed.Subtotal,
		CouponCode:    couponCode,
		Discount:      refreshed.Discount,
		TotalAmount:   refreshed.FinalPrice,
		PaymentRef:    charge.Reference,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	orderItems := toOrderItems(refreshed, now)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		order.ID = orderID

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		//注文は書けなかったが課金は済んでいる。運用で突き合わせる。
		log.Error().Err(err).Str("payment_ref", charge.Reference).Msg("order persist failed after charge")
		return OrderOutput{}, err
	}

	//カート破棄。失敗しても注文は成立している
	if err := u.carts.Delete(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("cart delete failed after checkout")
	}

	log.Info().
		Int64("order_id", order.ID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Str("payment_ref", charge.Reference).
		Msg("order created")

	return toOrderOutput(order, orderItems), nil
}

// 明細を現在のカタログで引き直す。価格が1件でも違えば priceChanged=true。
// 商品が消えていれば ErrNotFound。
func (u *CheckoutUsecase) revalidateLines(ctx context.Context, cart *model.Cart) (*model.Cart, bool, error) {
	refreshed := &model.Cart{
		Lines:  make(map[int64]model.CartLine, len(cart.Lines)),
		Coupon: cart.Coupon,
	}
	priceChanged := false

	var txErr error
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, line := range cart.Lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				txErr = repo.ErrNotFound
				return txErr
			}
			if err != nil {
				txErr = NewHTTPError(http.StatusInternalServerError, "db error")
				return txErr
			}
			if !p.IsActive {
				txErr = repo.ErrNotFound
				return txErr
			}

			if !p.Price.Equal(line.UnitPrice) {
				priceChanged = true
			}

			refreshed.Lines[line.ProductID] = model.CartLine{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.Price,
				Quantity:  line.Quantity,
			}
		}
		return nil
	})
	if err != nil {
		if txErr != nil {
			return nil, false, txErr
		}
		return nil, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	refreshed.Recompute()
	return refreshed, priceChanged, nil
}

func toOrderItems(cart *model.Cart, now time.Time) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, model.OrderItem{
			ProductID:           l.ProductID,
			ProductNameSnapshot: l.Name,
			UnitPriceSnapshot:   l.UnitPrice,
			Quantity:            l.Quantity,
			CreatedAt:           now,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot.StringFixed(2),
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal.StringFixed(2),
		CouponCode:    o.CouponCode,
		Discount:      o.Discount.StringFixed(2),
		TotalAmount:   o.TotalAmount.StringFixed(2),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
