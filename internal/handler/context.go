package handler

import (
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
)

// JWTミドルウェアが積んだuser_idを取り出す
func userIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}

	return id, true
}

// JWTミドルウェアが積んだ表示名を取り出す（無ければ空）
func usernameFromContext(c echo.Context) string {
	v := c.Get(middleware.CtxUserNameKey)
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
