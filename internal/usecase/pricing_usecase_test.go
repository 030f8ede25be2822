package usecase_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validCoupon(code string, typ model.DiscountType, value string) model.Coupon {
	return model.Coupon{
		ID:            1,
		Code:          code,
		DiscountType:  typ,
		DiscountValue: dec(value),
		ExpiryDate:    testNow.Add(24 * time.Hour),
		IsActive:      true,
	}
}

// 10.00 x 3 のカートをセッションに用意する
func seedCart(t *testing.T, store *memCartStore, sessionID string) {
	t.Helper()
	cart := model.NewCart()
	cart.SetLine(model.CartLine{ProductID: 1, Name: "Widget", UnitPrice: dec("10.00"), Quantity: 3})
	cart.Recompute()
	assert.NoError(t, store.Save(context.Background(), sessionID, cart))
}

func TestPricingUsecase_ApplyCoupon_Percentage(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	cRepo.On("FindByCode", mock.Anything, "SAVE10").
		Return(validCoupon("SAVE10", model.DiscountTypePercentage, "10"), nil)

	out, err := uc.ApplyCoupon(ctx, "s1", "SAVE10")

	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", out.CouponCode)
	assert.Equal(t, "30.00", out.Subtotal)
	assert.Equal(t, "3.00", out.Discount)
	assert.Equal(t, "27.00", out.FinalPrice)
}

func TestPricingUsecase_ApplyCoupon_FixedOverSubtotalFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	cart := model.NewCart()
	cart.SetLine(model.CartLine{ProductID: 1, Name: "Cheap", UnitPrice: dec("3.00"), Quantity: 1})
	cart.Recompute()
	assert.NoError(t, store.Save(ctx, "s1", cart))

	cRepo.On("FindByCode", mock.Anything, "FIVE").
		Return(validCoupon("FIVE", model.DiscountTypeFixed, "5.00"), nil)

	out, err := uc.ApplyCoupon(ctx, "s1", "FIVE")

	assert.NoError(t, err)
	assert.Equal(t, "0.00", out.FinalPrice)
}

func TestPricingUsecase_ApplyCoupon_ReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	cRepo.On("FindByCode", mock.Anything, "SAVE10").
		Return(validCoupon("SAVE10", model.DiscountTypePercentage, "10"), nil)
	cRepo.On("FindByCode", mock.Anything, "FLAT5").
		Return(validCoupon("FLAT5", model.DiscountTypeFixed, "5.00"), nil)

	_, err := uc.ApplyCoupon(ctx, "s1", "SAVE10")
	assert.NoError(t, err)

	out, err := uc.ApplyCoupon(ctx, "s1", "FLAT5")

	//同時に1枚だけ。前のクーポンは置き換わる
	assert.NoError(t, err)
	assert.Equal(t, "FLAT5", out.CouponCode)
	assert.Equal(t, "5.00", out.Discount)
	assert.Equal(t, "25.00", out.FinalPrice)
}

func TestPricingUsecase_ApplyCoupon_UnknownCode(t *testing.T) {
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	cRepo.On("FindByCode", mock.Anything, "NOPE").Return(model.Coupon{}, repo.ErrNotFound)

	_, err := uc.ApplyCoupon(context.Background(), "s1", "NOPE")
	assert.ErrorIs(t, err, usecase.ErrInvalidCoupon)
}

func TestPricingUsecase_ApplyCoupon_Expired(t *testing.T) {
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	expired := validCoupon("OLD", model.DiscountTypePercentage, "10")
	expired.ExpiryDate = testNow.Add(-time.Hour)
	cRepo.On("FindByCode", mock.Anything, "OLD").Return(expired, nil)

	_, err := uc.ApplyCoupon(context.Background(), "s1", "OLD")
	assert.ErrorIs(t, err, usecase.ErrInvalidCoupon)
}

func TestPricingUsecase_ApplyCoupon_Inactive(t *testing.T) {
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	disabled := validCoupon("OFF", model.DiscountTypeFixed, "5.00")
	disabled.IsActive = false
	cRepo.On("FindByCode", mock.Anything, "OFF").Return(disabled, nil)

	_, err := uc.ApplyCoupon(context.Background(), "s1", "OFF")
	assert.ErrorIs(t, err, usecase.ErrInvalidCoupon)
}

func TestPricingUsecase_ApplyCoupon_EmptyCode(t *testing.T) {
	uc := usecase.NewPricingUsecase(newMemCartStore(), new(CouponRepoMock), fixedClock{now: testNow})

	_, err := uc.ApplyCoupon(context.Background(), "s1", "  ")
	assert.ErrorIs(t, err, usecase.ErrInvalidCoupon)
}

func TestPricingUsecase_RemoveCoupon_RestoresSubtotal(t *testing.T) {
	ctx := context.Background()
	store := newMemCartStore()
	cRepo := new(CouponRepoMock)
	uc := usecase.NewPricingUsecase(store, cRepo, fixedClock{now: testNow})

	seedCart(t, store, "s1")
	cRepo.On("FindByCode", mock.Anything, "SAVE10").
		Return(validCoupon("SAVE10", model.DiscountTypePercentage, "10"), nil)

	_, err := uc.ApplyCoupon(ctx, "s1", "SAVE10")
	assert.NoError(t, err)

	out, err := uc.RemoveCoupon(ctx, "s1")

	assert.NoError(t, err)
	assert.Empty(t, out.CouponCode)
	assert.Equal(t, "0.00", out.Discount)
	assert.Equal(t, "30.00", out.FinalPrice)
}
