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

// =====================
// List tests
// =====================

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(newFakeTxManager(), new(AuditRepoMock))

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}

func TestAdminOrderUsecase_List_InvalidLimit(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(newFakeTxManager(), new(AuditRepoMock))

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 101})
	assertErrContains(t, err, "invalid limit")
}

func TestAdminOrderUsecase_List_Success(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewAdminOrderUsecase(tx, new(AuditRepoMock))

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20, Status: "PENDING"}
	orders := []model.Order{
		{ID: 1, CustomerName: "Taro", Status: model.OrderStatusPending, TotalAmount: dec("25.00")},
	}
	tx.orders.On("ListAdmin", mock.Anything, f).Return(orders, int64(1), nil)
	tx.orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{
		{ProductID: 1, ProductNameSnapshot: "Widget", UnitPriceSnapshot: dec("10.00"), Quantity: 3},
	}, nil)

	out, err := uc.List(context.Background(), f)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "25.00", out[0].TotalAmount)
	assert.Len(t, out[0].Items, 1)
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminOrderUsecase_UpdateStatus_ForwardTransition(t *testing.T) {
	tx := newFakeTxManager()
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	tx.orders.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	tx.orders.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusShipped).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus && l.ResourceID == 5
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 100, 5, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})

	assert.NoError(t, err)
	tx.orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	tx := newFakeTxManager()
	audit := new(AuditRepoMock)
	uc := usecase.NewAdminOrderUsecase(tx, audit)

	tx.orders.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusShipped}, nil)

	err := uc.UpdateStatus(context.Background(), 100, 5, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})

	assert.NoError(t, err)
	tx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_BackwardRejected(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewAdminOrderUsecase(tx, new(AuditRepoMock))

	tx.orders.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusDelivered}, nil)

	err := uc.UpdateStatus(context.Background(), 100, 5, usecase.AdminUpdateOrderStatusInput{Status: "PENDING"})

	assertErrContains(t, err, "invalid status transition")
	tx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_SkipRejected(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewAdminOrderUsecase(tx, new(AuditRepoMock))

	tx.orders.On("FindByID", mock.Anything, int64(5)).
		Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)

	//PENDINGからDELIVEREDへの飛び越しは不可
	err := uc.UpdateStatus(context.Background(), 100, 5, usecase.AdminUpdateOrderStatusInput{Status: "DELIVERED"})

	assertErrContains(t, err, "invalid status transition")
}

func TestAdminOrderUsecase_UpdateStatus_UnknownStatus(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(newFakeTxManager(), new(AuditRepoMock))

	err := uc.UpdateStatus(context.Background(), 100, 5, usecase.AdminUpdateOrderStatusInput{Status: "CANCELED"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	tx := newFakeTxManager()
	uc := usecase.NewAdminOrderUsecase(tx, new(AuditRepoMock))

	tx.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.UpdateStatus(context.Background(), 100, 99, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})
	assertErrContains(t, err, "not found")
}

func TestAdminOrderUsecase_UpdateStatus_Unauthorized(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(newFakeTxManager(), new(AuditRepoMock))

	err := uc.UpdateStatus(context.Background(), 0, 5, usecase.AdminUpdateOrderStatusInput{Status: "SHIPPED"})
	assertErrContains(t, err, "unauthorized")
}
