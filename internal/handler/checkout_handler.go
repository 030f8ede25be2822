package handler

import (
	"net/http"

	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウト確定API。ゲストも使える。
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// チェックアウトのルートを登録（セッションミドルウェア前提）
func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.finalize)
}

type checkoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

func (h *CheckoutHandler) finalize(c echo.Context) error {
	sessionID := middleware.SessionIDFromContext(c)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//ログイン済みならJWTミドルウェアがuser_idを入れている。ゲストはnilのまま。
	var userID *int64
	if raw := c.Get(middleware.CtxUserIDKey); raw != nil {
		if id, ok := raw.(int64); ok && id > 0 {
			userID = &id
		}
	}

	out, err := h.uc.Finalize(c.Request().Context(), sessionID, usecase.CheckoutInput{
		UserID: userID,
		Customer: usecase.CustomerInfo{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
