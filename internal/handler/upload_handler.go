package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"shop/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// 1ファイルあたりの上限（32MB）
const maxUploadBytes = 32 << 20

// 上限超過。クライアントには413で返す
var errFileTooLarge = errors.New("file too large")

// ユーザー投稿リソースのアップロードAPI。
// ファイルはローカルディスクへ保存し、DBにはパスとメタ情報を持つ。
type UploadHandler struct {
	uc        *usecase.UploadUsecase
	uploadDir string
}

// DI
func NewUploadHandler(uc *usecase.UploadUsecase, uploadDir string) *UploadHandler {
	return &UploadHandler{uc: uc, uploadDir: uploadDir}
}

// 公開側（承認済み一覧）
func (h *UploadHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/uploads", h.listApproved)
}

// 認証側（投稿・自分の一覧）
func (h *UploadHandler) RegisterAuthedRoutes(g *echo.Group) {
	g.POST("/uploads", h.submit)
	g.GET("/uploads/mine", h.listMine)
}

func (h *UploadHandler) listApproved(c echo.Context) error {
	out, err := h.uc.ListApproved(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UploadHandler) listMine(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UploadHandler) submit(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	resourceName := c.FormValue("resource_name")
	description := c.FormValue("description")

	//本体ファイルは必須
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
	}

	filePath, err := h.saveFile(file)
	if err != nil {
		return h.writeSaveError(c, err)
	}

	//サムネイル画像は任意
	imagePath := ""
	if image, ierr := c.FormFile("image"); ierr == nil {
		imagePath, err = h.saveFile(image)
		if err != nil {
			return h.writeSaveError(c, err)
		}
	}

	out, err := h.uc.Submit(c.Request().Context(), userID, usernameFromContext(c), usecase.SubmitUploadInput{
		ResourceName: resourceName,
		Description:  description,
		FilePath:     filePath,
		ImagePath:    imagePath,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// 保存失敗をHTTPへ変換する。上限超過だけは413、他は詳細を伏せて500。
func (h *UploadHandler) writeSaveError(c echo.Context, err error) error {
	if errors.Is(err, errFileTooLarge) {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
	}
	log.Error().Err(err).Msg("failed to store uploaded file")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// multipartのファイルをUploadDir配下へ保存してパスを返す。
// ファイル名はuuidで払い出す（元の名前は信用しない）。
func (h *UploadHandler) saveFile(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadBytes {
		return "", errFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(fh.Filename)
	dstPath := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return dstPath, nil
}
