package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError はhandlerでそのままレスポンスにできる業務エラー。
type HTTPError struct {
	Status  int
	Message string
	// 500のときの元エラー（本番以外はレスポンスに出す）
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 想定外のエラーを500に包む
func NewInternalError(err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// エラーメッセージ
const (
	ErrMsgUserIDRequired     = "User ID is required"
	ErrMsgAddCartRequired    = "Product ID and quantity are required"
	ErrMsgQuantityPositive   = "Quantity must be a positive integer"
	ErrMsgQuantityRequired   = "Quantity is required"
	ErrMsgCartItemIDRequired = "Cart item ID is required"
	ErrMsgProductNotFound    = "Product not found"
	ErrMsgCartNotFound       = "Cart not found"
	ErrMsgCartItemNotFound   = "Cart or cart item not found"
	ErrMsgCheckoutRequired   = "Name, email, and cart items are required"
	ErrMsgCartEmpty          = "Cart is empty"
	ErrMsgInvalidEmail       = "Invalid email format"
	ErrMsgInvalidCartItem    = "Each cart item needs a non-negative price and a quantity of at least 1"
	ErrMsgEmailRequired      = "Email is required"
	ErrMsgReceiptNotFound    = "Receipt not found"
	ErrMsgInvalidStatus      = "Invalid status"
	ErrMsgSignupRequired     = "Name, email, and password are required"
	ErrMsgLoginRequired      = "Email and password are required"
	ErrMsgPasswordTooShort   = "Password must be at least 8 characters"
	ErrMsgEmailAlreadyExists = "Email already registered"
	ErrMsgInvalidCredentials = "Invalid credentials"
	ErrMsgUserNotFound       = "User not found"
	ErrMsgUnauthorized       = "Unauthorized"
)
