package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/auth")

	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.GET("/profile", h.profile, middleware.AuthJWT(cfg))
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req usecase.AuthSignupRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	out, err := h.uc.Signup(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return writeFail(c, http.StatusBadRequest, "Invalid request body")
	}

	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}

func (h *AuthHandler) profile(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeFail(c, http.StatusUnauthorized, usecase.ErrMsgUnauthorized)
	}

	out, err := h.uc.Profile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return writeOK(c, http.StatusOK, out)
}
