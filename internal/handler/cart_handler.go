package handler

import (
	"net/http"
	"strings"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// qtyは整数チェックのため数値のまま受ける
type AddCartRequest struct {
	ProductID string   `json:"productId"`
	Qty       *float64 `json:"qty"`
}

type UpdateCartItemRequest struct {
	Qty *float64 `json:"qty"`
}

// /cart, /cart/:cartId を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("", h.addToCart)
	g.DELETE("", h.clearCart)
	g.PUT("/:cartId", h.updateItem)
	g.DELETE("/:cartId", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(req.ProductID) == "" || req.Qty == nil {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgAddCartRequired)
	}
	qty, ok := intFromNumber(req.Qty)
	if !ok || qty < 1 {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgQuantityPositive)
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  qty,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Qty == nil {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgQuantityRequired)
	}

	// 1未満はusecase/repository側で1に丸める。整数でなければ400
	qty, ok := intFromNumber(req.Qty)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgQuantityPositive)
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), userID, c.Param("cartId"), qty)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	out, err := h.uc.RemoveCartItem(c.Request().Context(), userID, c.Param("cartId"))
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return writeFail(c, http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	out, err := h.uc.ClearCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
