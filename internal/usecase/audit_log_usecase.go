package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// 監査ログの閲覧（管理者のみ）。
// 書き込みは各管理操作のusecaseが行い、ここは読むだけ。
type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type AdminListAuditLogsInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// 絞り込み付きの一覧。新しい順で返る。
func (u *AuditLogUsecase) AdminListAuditLogs(ctx context.Context, in AdminListAuditLogsInput) ([]model.AuditLog, error) {
	f := repo.AuditLogFilter{
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
	}

	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionCreateProduct, model.AuditActionUpdateProduct, model.AuditActionDeleteProduct,
			model.AuditActionUpdateOrderStatus,
			model.AuditActionCreateCoupon, model.AuditActionUpdateCoupon, model.AuditActionDeleteCoupon,
			model.AuditActionModerateUpload:
			f.Action = &a
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
	}

	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		switch rt {
		case model.AuditResourceProduct, model.AuditResourceOrder, model.AuditResourceCoupon, model.AuditResourceUpload:
			f.ResourceType = &rt
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource type")
		}
	}

	// limit（default 50）
	limit := in.Limit
	if limit == 0 {
		limit = 50
	}
	if limit < 1 || limit > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	f.Limit = limit

	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	f.Offset = in.Offset

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}
