package model

import "time"

type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "Pending"
	UploadStatusApproved UploadStatus = "Approved"
	UploadStatusRejected UploadStatus = "Rejected"
)

// ユーザー投稿のリソース。管理者が承認するまで公開されない。
type Upload struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64        `gorm:"not null;index" json:"user_id"`
	Username     string       `gorm:"type:varchar(255);not null" json:"username"`
	ResourceName string       `gorm:"type:varchar(255);not null" json:"resource_name"`
	Description  string       `gorm:"type:text" json:"description"`
	FilePath     string       `gorm:"type:varchar(512);not null" json:"file_path"`
	//プレビュー画像（任意）
	ImagePath string       `gorm:"type:varchar(512)" json:"image_path,omitempty"`
	Status    UploadStatus `gorm:"type:varchar(20);not null;index;default:'Pending'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
