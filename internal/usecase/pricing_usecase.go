package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// PricingUsecase はカートへのクーポン適用/解除を担当します。
// 適用できるクーポンは同時に1枚だけで、新しく適用すると前のものは置き換わる。
type PricingUsecase struct {
	carts      repo.CartStore
	couponRepo repo.CouponRepository
	clock      Clock
}

func NewPricingUsecase(carts repo.CartStore, couponRepo repo.CouponRepository, clock Clock) *PricingUsecase {
	return &PricingUsecase{
		carts:      carts,
		couponRepo: couponRepo,
		clock:      clock,
	}
}

// ApplyCoupon はコードを検証してカートに割引を載せる。
// 不明・無効・期限切れはすべて ErrInvalidCoupon。
func (u *PricingUsecase) ApplyCoupon(ctx context.Context, sessionID string, code string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return CartResponse{}, ErrInvalidCoupon
	}

	coupon, err := u.couponRepo.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, ErrInvalidCoupon
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !coupon.ValidAt(u.clock.Now()) {
		return CartResponse{}, ErrInvalidCoupon
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	//前のクーポンは置き換え
	cart.Coupon = &model.AppliedCoupon{
		Code:  coupon.Code,
		Type:  coupon.DiscountType,
		Value: coupon.DiscountValue,
	}
	cart.Recompute()

	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

// RemoveCoupon は割引を外す。final price は subtotal に戻る。
func (u *PricingUsecase) RemoveCoupon(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "no session")
	}

	cart, err := u.loadCart(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	cart.Coupon = nil
	cart.Recompute()

	if err := u.carts.Save(ctx, sessionID, cart); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(cart), nil
}

// CartUsecaseのloadCartと同じ挙動をこちらでも使う。
func (u *PricingUsecase) loadCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.NewCart(), nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return cart, nil
}
