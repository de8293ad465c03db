package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// ルートで使うハンドラ一式
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Auth     *handler.AuthHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Auth.RegisterRoutes(e, cfg)
}
