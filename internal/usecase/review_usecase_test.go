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

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func TestReviewUsecase_AddReview_Success(t *testing.T) {
	rRepo := new(ReviewRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewReviewUsecase(rRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "Widget", "10.00"), nil)
	rRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 1 && r.UserID == 42 && r.Rating == 5 && r.Username == "taro"
	})).Return(model.Review{ID: 1, ProductID: 1, UserID: 42, Rating: 5}, nil)

	created, err := uc.AddReview(context.Background(), 42, "taro", usecase.AddReviewInput{
		ProductID: 1, Rating: 5, Comment: "great",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	rRepo.AssertExpectations(t)
}

func TestReviewUsecase_AddReview_RatingOutOfRange(t *testing.T) {
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	_, err := uc.AddReview(context.Background(), 42, "taro", usecase.AddReviewInput{ProductID: 1, Rating: 0})
	assertErrContains(t, err, "rating must be 1-5")

	_, err = uc.AddReview(context.Background(), 42, "taro", usecase.AddReviewInput{ProductID: 1, Rating: 6})
	assertErrContains(t, err, "rating must be 1-5")
}

func TestReviewUsecase_AddReview_InactiveProduct(t *testing.T) {
	rRepo := new(ReviewRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewReviewUsecase(rRepo, pRepo)

	p := activeProduct(1, "Hidden", "10.00")
	p.IsActive = false
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(p, nil)

	_, err := uc.AddReview(context.Background(), 42, "taro", usecase.AddReviewInput{ProductID: 1, Rating: 4})

	assert.ErrorIs(t, err, repo.ErrNotFound)
	rRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewUsecase_AddReview_Unauthorized(t *testing.T) {
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	_, err := uc.AddReview(context.Background(), 0, "", usecase.AddReviewInput{ProductID: 1, Rating: 3})
	assertErrContains(t, err, "unauthorized")
}

func TestReviewUsecase_ListProductReviews_Success(t *testing.T) {
	rRepo := new(ReviewRepoMock)
	pRepo := new(ProductRepoMock)
	uc := usecase.NewReviewUsecase(rRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, "Widget", "10.00"), nil)
	rRepo.On("ListByProductID", mock.Anything, int64(1)).
		Return([]model.Review{{ID: 1, Rating: 5}}, nil)

	out, err := uc.ListProductReviews(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestReviewUsecase_ListProductReviews_UnknownProduct(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewReviewUsecase(new(ReviewRepoMock), pRepo)

	pRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.ListProductReviews(context.Background(), 9)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
