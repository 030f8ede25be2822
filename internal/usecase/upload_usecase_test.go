package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UploadRepoMock struct{ mock.Mock }

func (m *UploadRepoMock) Create(ctx context.Context, u model.Upload) (model.Upload, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.Upload)
	return created, args.Error(1)
}

func (m *UploadRepoMock) FindByID(ctx context.Context, id int64) (model.Upload, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.Upload)
	return u, args.Error(1)
}

func (m *UploadRepoMock) ListByStatus(ctx context.Context, status model.UploadStatus) ([]model.Upload, error) {
	args := m.Called(ctx, status)
	items, _ := args.Get(0).([]model.Upload)
	return items, args.Error(1)
}

func (m *UploadRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Upload, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Upload)
	return items, args.Error(1)
}

func (m *UploadRepoMock) UpdateStatus(ctx context.Context, id int64, status model.UploadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestUploadUsecase_Submit_StartsPending(t *testing.T) {
	uRepo := new(UploadRepoMock)
	uc := usecase.NewUploadUsecase(uRepo, new(AuditRepoMock))

	uRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.Upload) bool {
		return u.Status == model.UploadStatusPending && u.UserID == 42
	})).Return(model.Upload{ID: 1, Status: model.UploadStatusPending}, nil)

	created, err := uc.Submit(context.Background(), 42, "taro", usecase.SubmitUploadInput{
		ResourceName: "texture pack",
		FilePath:     "uploads/abc.zip",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.UploadStatusPending, created.Status)
	uRepo.AssertExpectations(t)
}

func TestUploadUsecase_Submit_RequiresResourceName(t *testing.T) {
	uc := usecase.NewUploadUsecase(new(UploadRepoMock), new(AuditRepoMock))

	_, err := uc.Submit(context.Background(), 42, "taro", usecase.SubmitUploadInput{
		FilePath: "uploads/abc.zip",
	})
	assertErrContains(t, err, "resource_name required")
}

func TestUploadUsecase_ListApproved_OnlyApproved(t *testing.T) {
	uRepo := new(UploadRepoMock)
	uc := usecase.NewUploadUsecase(uRepo, new(AuditRepoMock))

	uRepo.On("ListByStatus", mock.Anything, model.UploadStatusApproved).
		Return([]model.Upload{{ID: 1, Status: model.UploadStatusApproved}}, nil)

	out, err := uc.ListApproved(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	uRepo.AssertExpectations(t)
}

func TestUploadUsecase_AdminModerate_ApprovePending(t *testing.T) {
	uRepo := new(UploadRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewUploadUsecase(uRepo, audit)

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Upload{ID: 1, Status: model.UploadStatusPending}, nil)
	uRepo.On("UpdateStatus", mock.Anything, int64(1), model.UploadStatusApproved).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionModerateUpload
	})).Return(nil)

	err := uc.AdminModerate(context.Background(), 100, 1, "Approved")

	assert.NoError(t, err)
	uRepo.AssertExpectations(t)
}

func TestUploadUsecase_AdminModerate_AlreadyModerated(t *testing.T) {
	uRepo := new(UploadRepoMock)
	uc := usecase.NewUploadUsecase(uRepo, new(AuditRepoMock))

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Upload{ID: 1, Status: model.UploadStatusApproved}, nil)

	err := uc.AdminModerate(context.Background(), 100, 1, "Rejected")

	assertErrContains(t, err, "already moderated")
	uRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadUsecase_AdminModerate_InvalidStatus(t *testing.T) {
	uc := usecase.NewUploadUsecase(new(UploadRepoMock), new(AuditRepoMock))

	//Pendingへ戻すことはできない
	err := uc.AdminModerate(context.Background(), 100, 1, "Pending")
	assertErrContains(t, err, "invalid status")
}

func TestUploadUsecase_AdminModerate_NotFound(t *testing.T) {
	uRepo := new(UploadRepoMock)
	uc := usecase.NewUploadUsecase(uRepo, new(AuditRepoMock))

	uRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Upload{}, repo.ErrNotFound)

	err := uc.AdminModerate(context.Background(), 100, 9, "Approved")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
