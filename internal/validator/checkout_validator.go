package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"storefront/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

type checkoutValidator struct{}

func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// 順番が大事：userID → 必須 → 空カート → email形式 → 明細
func (v *checkoutValidator) ValidateCheckout(ctx context.Context, userID string, in usecase.CheckoutInput) error {
	if strings.TrimSpace(userID) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgUserIDRequired)
	}

	// cartItemsはnil（未指定）と空を区別する
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.CartItems == nil {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgCheckoutRequired)
	}

	if len(in.CartItems) == 0 {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgCartEmpty)
	}

	if !isEmailLike(strings.TrimSpace(in.Email)) {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgInvalidEmail)
	}

	for _, it := range in.CartItems {
		if it.Malformed || it.Quantity < 1 || it.Price < 0 {
			return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgInvalidCartItem)
		}
	}

	return nil
}

// レシート検索用
func (v *checkoutValidator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgEmailRequired)
	}
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgInvalidEmail)
	}
	return nil
}
