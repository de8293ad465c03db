package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// 数量はqtyでもquantityでも受ける
type CheckoutItemRequest struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Qty       *float64 `json:"qty"`
	Quantity  *float64 `json:"quantity"`
	ImageURL  string   `json:"imageUrl"`
}

type CheckoutRequest struct {
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	CartItems []CheckoutItemRequest `json:"cartItems"`
}

type UpdateReceiptStatusRequest struct {
	Status string `json:"status"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")

	g.POST("", h.checkout)
	g.GET("/receipt/:receiptId", h.getReceipt)
	g.GET("/receipt/:receiptId/text", h.getReceiptText)
	g.GET("/receipts", h.listReceipts)

	// 管理者だけ
	g.PUT("/receipt/:receiptId/status", h.updateStatus,
		middleware.AuthJWT(cfg),
		middleware.AdminRoleGuard(),
	)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	// userIDの有無もusecase側で順番通りに検証する
	userID, _ := userIDFromHeader(c)

	in := usecase.CheckoutInput{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.CartItems != nil {
		in.CartItems = make([]usecase.CheckoutItemInput, 0, len(req.CartItems))
	}
	// 壊れた明細もそのまま渡し、エラーの順番はusecase側に任せる
	for _, it := range req.CartItems {
		in.CartItems = append(in.CartItems, toCheckoutItem(it))
	}

	receipt, err := h.uc.Checkout(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, receipt)
}

func toCheckoutItem(it CheckoutItemRequest) usecase.CheckoutItemInput {
	out := usecase.CheckoutItemInput{
		ProductID: it.ProductID,
		Name:      it.Name,
		ImageURL:  it.ImageURL,
	}
	if it.Price == nil {
		out.Malformed = true
	} else {
		out.Price = *it.Price
	}

	q := it.Qty
	if q == nil {
		q = it.Quantity
	}
	qty, ok := intFromNumber(q)
	if !ok {
		out.Malformed = true
	}
	out.Quantity = qty
	return out
}

func (h *CheckoutHandler) getReceipt(c echo.Context) error {
	r, err := h.uc.GetReceipt(c.Request().Context(), c.Param("receiptId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, r)
}

func (h *CheckoutHandler) getReceiptText(c echo.Context) error {
	r, err := h.uc.GetReceipt(c.Request().Context(), c.Param("receiptId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.String(http.StatusOK, usecase.FormatReceipt(r))
}

func (h *CheckoutHandler) listReceipts(c echo.Context) error {
	list, err := h.uc.ListReceiptsByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, list)
}

func (h *CheckoutHandler) updateStatus(c echo.Context) error {
	var req UpdateReceiptStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	r, err := h.uc.UpdateReceiptStatus(c.Request().Context(), c.Param("receiptId"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, r)
}
