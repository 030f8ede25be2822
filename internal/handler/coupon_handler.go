package handler

import (
	"net/http"

	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カートへのクーポン適用/解除
type CouponHandler struct {
	uc *usecase.PricingUsecase
}

// DI
func NewCouponHandler(uc *usecase.PricingUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// クーポンのルートを登録（セッションミドルウェア前提）
func (h *CouponHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/cart/coupon", h.apply)
	g.DELETE("/cart/coupon", h.remove)
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

func (h *CouponHandler) apply(c echo.Context) error {
	sessionID := middleware.SessionIDFromContext(c)

	var req applyCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code required"})
	}

	out, err := h.uc.ApplyCoupon(c.Request().Context(), sessionID, req.Code)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) remove(c echo.Context) error {
	sessionID := middleware.SessionIDFromContext(c)

	out, err := h.uc.RemoveCoupon(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
