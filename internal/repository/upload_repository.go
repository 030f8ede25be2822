package repository

import (
	"context"

	"shop/internal/domain/model"
)

type UploadRepository interface {
	Create(ctx context.Context, u model.Upload) (model.Upload, error)
	FindByID(ctx context.Context, id int64) (model.Upload, error)
	ListByStatus(ctx context.Context, status model.UploadStatus) ([]model.Upload, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Upload, error)
	UpdateStatus(ctx context.Context, id int64, status model.UploadStatus) error
}
