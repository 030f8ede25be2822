package handler

import (
	"net/http"
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 投稿リソースのモデレーションAPI（管理者のみ）
type AdminUploadHandler struct {
	uc *usecase.UploadUsecase
}

// DI
func NewAdminUploadHandler(uc *usecase.UploadUsecase) *AdminUploadHandler {
	return &AdminUploadHandler{uc: uc}
}

// モデレーションのルートを登録（管理者ガード前提）
func (h *AdminUploadHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/uploads/pending", h.listPending)
	g.PUT("/uploads/:id/status", h.moderate)
}

type moderateUploadRequest struct {
	Status string `json:"status"`
}

func (h *AdminUploadHandler) listPending(c echo.Context) error {
	out, err := h.uc.AdminListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUploadHandler) moderate(c echo.Context) error {
	adminID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req moderateUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminModerate(c.Request().Context(), adminID, id, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
