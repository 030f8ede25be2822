package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "cart_session"
	CtxSessionIDKey   = "session_id" // string
)

const sessionCookieMaxAge = 24 * time.Hour

// カートセッション用のcookieを発行するミドルウェア。
// cookieが無ければ新しいセッションIDを払い出してセットします。
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""

			cookie, err := c.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				//形式が不正なcookieは捨てて再発行する
				if _, perr := uuid.Parse(cookie.Value); perr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(sessionCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// contextからセッションIDを取り出します。ミドルウェア未通過なら空文字。
func SessionIDFromContext(c echo.Context) string {
	raw := c.Get(CtxSessionIDKey)
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return s
}
