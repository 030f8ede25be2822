package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type UploadGormRepository struct {
	db *gorm.DB
}

// DI
func NewUploadGormRepository(db *gorm.DB) *UploadGormRepository {
	return &UploadGormRepository{db: db}
}

func (r *UploadGormRepository) Create(ctx context.Context, u model.Upload) (model.Upload, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return model.Upload{}, err
	}
	return u, nil
}

func (r *UploadGormRepository) FindByID(ctx context.Context, id int64) (model.Upload, error) {
	var u model.Upload
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Upload{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Upload{}, err
	}
	return u, nil
}

func (r *UploadGormRepository) ListByStatus(ctx context.Context, status model.UploadStatus) ([]model.Upload, error) {
	var uploads []model.Upload
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id desc").
		Find(&uploads).Error
	if err != nil {
		return []model.Upload{}, err
	}
	return uploads, nil
}

func (r *UploadGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Upload, error) {
	var uploads []model.Upload
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&uploads).Error
	if err != nil {
		return []model.Upload{}, err
	}
	return uploads, nil
}

func (r *UploadGormRepository) UpdateStatus(ctx context.Context, id int64, status model.UploadStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Upload{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
