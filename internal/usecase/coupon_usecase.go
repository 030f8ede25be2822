package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

// クーポンの管理者CRUD。適用側は PricingUsecase。
type CouponUsecase struct {
	couponRepo repo.CouponRepository
	auditRepo  repo.AuditLogRepository
}

func NewCouponUsecase(couponRepo repo.CouponRepository, auditRepo repo.AuditLogRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo, auditRepo: auditRepo}
}

type CouponListOutput struct {
	Items []model.Coupon `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type AdminSaveCouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	ExpiryDate    time.Time
	IsActive      bool
}

func validateSaveCoupon(in AdminSaveCouponInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return NewHTTPError(http.StatusBadRequest, "code required")
	}
	if len(in.Code) > 64 {
		return NewHTTPError(http.StatusBadRequest, "code too long")
	}

	switch model.DiscountType(in.DiscountType) {
	case model.DiscountTypePercentage:
		if in.DiscountValue.LessThanOrEqual(decimal.Zero) || in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return NewHTTPError(http.StatusBadRequest, "percentage must be in (0,100]")
		}
	case model.DiscountTypeFixed:
		if in.DiscountValue.LessThanOrEqual(decimal.Zero) {
			return NewHTTPError(http.StatusBadRequest, "value must be > 0")
		}
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid discount_type")
	}

	if in.ExpiryDate.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "expiry_date required")
	}
	return nil
}

func (u *CouponUsecase) AdminListCoupons(ctx context.Context, page, limit int) (CouponListOutput, error) {
	if page < 1 {
		return CouponListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return CouponListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.couponRepo.List(ctx, page, limit)
	if err != nil {
		return CouponListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CouponListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *CouponUsecase) AdminCreateCoupon(ctx context.Context, adminUserID int64, in AdminSaveCouponInput) (model.Coupon, error) {
	if adminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateSaveCoupon(in); err != nil {
		return model.Coupon{}, err
	}

	//コード重複チェック（uniqueIndexもあるが先に分かりやすく弾く）
	if _, err := u.couponRepo.FindByCode(ctx, in.Code); err == nil {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "code already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:          strings.TrimSpace(in.Code),
		DiscountType:  model.DiscountType(in.DiscountType),
		DiscountValue: in.DiscountValue,
		ExpiryDate:    in.ExpiryDate,
		IsActive:      in.IsActive,
	})
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, adminUserID, model.AuditActionCreateCoupon, created.ID, nil, created)
	return created, nil
}

func (u *CouponUsecase) AdminUpdateCoupon(ctx context.Context, adminUserID int64, couponID int64, in AdminSaveCouponInput) (model.Coupon, error) {
	if adminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateSaveCoupon(in); err != nil {
		return model.Coupon{}, err
	}

	before, err := u.couponRepo.FindByID(ctx, couponID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated := before
	updated.Code = strings.TrimSpace(in.Code)
	updated.DiscountType = model.DiscountType(in.DiscountType)
	updated.DiscountValue = in.DiscountValue
	updated.ExpiryDate = in.ExpiryDate
	updated.IsActive = in.IsActive

	if err := u.couponRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Coupon{}, repo.ErrNotFound
		}
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, adminUserID, model.AuditActionUpdateCoupon, couponID, &before, updated)
	return updated, nil
}

func (u *CouponUsecase) AdminDeleteCoupon(ctx context.Context, adminUserID int64, couponID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if couponID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.couponRepo.Delete(ctx, couponID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.audit(ctx, adminUserID, model.AuditActionDeleteCoupon, couponID, nil, nil)
	return nil
}

func (u *CouponUsecase) audit(ctx context.Context, actorID int64, action model.AuditAction, resourceID int64, before, after interface{}) {
	beforeJSON, afterJSON := "", ""
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeJSON = string(b)
		}
	}
	if after != nil {
		if b, err := json.Marshal(after); err == nil {
			afterJSON = string(b)
		}
	}
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceCoupon,
		ResourceID:   resourceID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	})
}
