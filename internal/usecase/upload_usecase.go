package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// ユーザー投稿リソース。投稿時はPendingで、管理者の承認で公開される。
type UploadUsecase struct {
	uploadRepo repo.UploadRepository
	auditRepo  repo.AuditLogRepository
}

func NewUploadUsecase(uploadRepo repo.UploadRepository, auditRepo repo.AuditLogRepository) *UploadUsecase {
	return &UploadUsecase{uploadRepo: uploadRepo, auditRepo: auditRepo}
}

type SubmitUploadInput struct {
	ResourceName string
	Description  string
	//handlerがディスクに保存したパス
	FilePath  string
	ImagePath string
}

func (u *UploadUsecase) Submit(ctx context.Context, userID int64, username string, in SubmitUploadInput) (model.Upload, error) {
	if userID <= 0 {
		return model.Upload{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ResourceName) == "" {
		return model.Upload{}, NewHTTPError(http.StatusBadRequest, "resource_name required")
	}
	if strings.TrimSpace(in.FilePath) == "" {
		return model.Upload{}, NewHTTPError(http.StatusBadRequest, "file required")
	}

	created, err := u.uploadRepo.Create(ctx, model.Upload{
		UserID:       userID,
		Username:     strings.TrimSpace(username),
		ResourceName: strings.TrimSpace(in.ResourceName),
		Description:  in.Description,
		FilePath:     in.FilePath,
		ImagePath:    in.ImagePath,
		Status:       model.UploadStatusPending,
	})
	if err != nil {
		return model.Upload{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 承認済みリソースの公開一覧。
func (u *UploadUsecase) ListApproved(ctx context.Context) ([]model.Upload, error) {
	uploads, err := u.uploadRepo.ListByStatus(ctx, model.UploadStatusApproved)
	if err != nil {
		return []model.Upload{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return uploads, nil
}

// 自分の投稿一覧（ステータス込み）。
func (u *UploadUsecase) ListMine(ctx context.Context, userID int64) ([]model.Upload, error) {
	if userID <= 0 {
		return []model.Upload{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	uploads, err := u.uploadRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Upload{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return uploads, nil
}

// 管理者の承認待ち一覧。
func (u *UploadUsecase) AdminListPending(ctx context.Context) ([]model.Upload, error) {
	uploads, err := u.uploadRepo.ListByStatus(ctx, model.UploadStatusPending)
	if err != nil {
		return []model.Upload{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return uploads, nil
}

// 承認/却下。Pending以外からの変更は拒否。
func (u *UploadUsecase) AdminModerate(ctx context.Context, adminUserID int64, uploadID int64, status string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if uploadID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.UploadStatus(strings.TrimSpace(status))
	if newStatus != model.UploadStatusApproved && newStatus != model.UploadStatusRejected {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	before, err := u.uploadRepo.FindByID(ctx, uploadID)
	if errors.Is(err, repo.ErrNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if before.Status != model.UploadStatusPending {
		return NewHTTPError(http.StatusBadRequest, "already moderated")
	}

	if err := u.uploadRepo.UpdateStatus(ctx, uploadID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := `{"status":"` + string(before.Status) + `"}`
	afterJSON := `{"status":"` + string(newStatus) + `"}`
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionModerateUpload,
		ResourceType: model.AuditResourceUpload,
		ResourceID:   uploadID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	})

	return nil
}
