package server

import (
	"time"

	"shop/internal/config"
	"shop/internal/handler"
	appmw "shop/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Handlersはルート登録に必要なhandler一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Coupon       *handler.CouponHandler
	Checkout     *handler.CheckoutHandler
	Order        *handler.OrderHandler
	Review       *handler.ReviewHandler
	Upload       *handler.UploadHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminCoupon  *handler.AdminCouponHandler
	AdminUpload  *handler.AdminUploadHandler
	AdminAudit   *handler.AdminAuditLogHandler
}

// Newはechoインスタンスを組み立てて返す
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLogger())

	registerRoutes(e, cfg, h)

	return e
}

// zerologでアクセスログを出す
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return nil
		}
	}
}

// ルート一覧。
// 公開 / セッション(カート) / 認証 / 管理者 の4層。
func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Review.RegisterPublicRoutes(e)
	h.Upload.RegisterPublicRoutes(e)

	//カートセッション（ゲスト可、ログイン済みなら注文に紐づく）
	session := e.Group("", appmw.CartSession(), appmw.OptionalAuthJWT(cfg))
	h.Cart.RegisterRoutes(session)
	h.Coupon.RegisterRoutes(session)
	h.Checkout.RegisterRoutes(session)

	//要ログイン
	authed := e.Group("", appmw.AuthJWT(cfg))
	h.Order.RegisterRoutes(authed)
	h.Review.RegisterAuthedRoutes(authed)
	h.Upload.RegisterAuthedRoutes(authed)

	//管理者のみ
	admin := e.Group("/admin", appmw.AuthJWT(cfg), appmw.AdminRoleGuard())
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminCoupon.RegisterRoutes(admin)
	h.AdminUpload.RegisterRoutes(admin)
	h.AdminAudit.RegisterRoutes(admin)
}
