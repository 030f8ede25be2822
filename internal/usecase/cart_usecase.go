package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートの唯一の置き場所はセッションストアで、全ミューテーションの後に
// 再計算して書き戻します。
type CartUsecase struct {
	carts       repo.CartStore
	productRepo repo.ProductRepository
}

func NewCartUsecase(carts repo.CartStore, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		productRepo: productRepo,
	}
}

// CartLineResponse はカート明細のDTO。
// price は追加時点の価格を返します。
type CartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalQty   int64              `json:"total_qty"`
	Subtotal   string             `json:"subtotal"`
	CouponCode string             `json:"coupon_code,omitempty"`
	Discount   string             `json:"discount"`
	FinalPrice string             `json:"final_price"`
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateQuantityInput struct {
	ProductID int64
	Quantity  int64
}

// セッションのカートを読む（無ければ空カート）。
func (u *CartUsecase) loadCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.NewCart(), nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return cart, nil
}

// GetCart はカート取得（無ければ空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	return toCartResponse(cart), nil
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, repo.ErrNotFound
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, repo.ErrNotFound
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	// 既存明細があれば加算。単価は追加時点のカタログ価格で更新する。
	qty := in.Quantity
	if line, ok := cart.Line(in.ProductID); ok {
		qty += line.Quantity
	}
	cart.SetLine(model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
	})
	cart.Recompute()

	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

// 数量変更。qty<=0 は削除として扱う。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, in UpdateQuantityInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	line, ok := cart.Line(in.ProductID)
	if in.Quantity <= 0 {
		//削除。無くてもエラーにしない
		cart.RemoveLine(in.ProductID)
	} else {
		if !ok {
			return CartResponse{}, repo.ErrNotFound
		}
		line.Quantity = in.Quantity
		cart.SetLine(line)
	}
	cart.Recompute()

	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

// 明細削除（無ければno-op）
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID int64) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	cart.RemoveLine(productID)
	cart.Recompute()

	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

// 全明細とクーポンをクリア。
func (u *CartUsecase) Clear(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	cart := model.NewCart()
	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

func toCartResponse(cart *model.Cart) CartResponse {
	items := make([]CartLineResponse, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
		})
	}
	//mapなので順序を安定させる
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	code := ""
	if cart.Coupon != nil {
		code = cart.Coupon.Code
	}

	return CartResponse{
		Items:      items,
		TotalQty:   cart.TotalQty,
		Subtotal:   cart.Subtotal.StringFixed(2),
		CouponCode: code,
		Discount:   cart.Discount.StringFixed(2),
		FinalPrice: cart.FinalPrice.StringFixed(2),
	}
}
