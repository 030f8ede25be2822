package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderUsecase_ListMyOrders_Success(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	userID := int64(42)
	orders := []model.Order{
		{ID: 1, UserID: &userID, CustomerName: "Taro", Status: model.OrderStatusPending, TotalAmount: dec("25.00")},
	}
	tx.orders.On("ListByUserID", mock.Anything, userID, 1, 50).Return(orders, int64(1), nil)
	tx.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := uc.ListMyOrders(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "25.00", out[0].TotalAmount)
}

func TestOrderUsecase_ListMyOrders_Unauthorized(t *testing.T) {
	uc := usecase.NewOrderUsecase(newFakeTxManager())

	_, err := uc.ListMyOrders(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}

func TestOrderUsecase_GetMyOrderDetail_Success(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	userID := int64(42)
	tx.orders.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: &userID, Status: model.OrderStatusShipped, TotalAmount: dec("10.00")}, nil)
	tx.orderItems.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ProductID: 1, ProductNameSnapshot: "Widget", UnitPriceSnapshot: dec("10.00"), Quantity: 1},
	}, nil)

	out, err := uc.GetMyOrderDetail(context.Background(), userID, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Len(t, out.Items, 1)
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderHidden(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	ownerID := int64(1)
	tx.orders.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: &ownerID}, nil)

	//他人の注文は存在しない扱い
	_, err := uc.GetMyOrderDetail(context.Background(), 42, 7)
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_GetMyOrderDetail_GuestOrderHidden(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewOrderUsecase(tx)

	//ゲスト注文（UserIDなし）は誰の履歴にも出ない
	tx.orders.On("FindByID", mock.Anything, int64(7)).
		Return(model.Order{ID: 7, UserID: nil}, nil)

	_, err := uc.GetMyOrderDetail(context.Background(), 42, 7)
	assertErrContains(t, err, "not found")
}
