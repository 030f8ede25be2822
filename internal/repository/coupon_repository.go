package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CouponRepository interface {
	//大文字小文字は区別しない
	FindByCode(ctx context.Context, code string) (model.Coupon, error)
	List(ctx context.Context, page int, limit int) ([]model.Coupon, int64, error)

	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	Update(ctx context.Context, c model.Coupon) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (model.Coupon, error)
}
