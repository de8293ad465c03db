package validator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"storefront/internal/repository"
	"storefront/internal/usecase"
)

// パスワード最低文字数
const minPasswordLen = 8

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, name string, email string, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// 必須チェック
	if name == "" || email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgSignupRequired)
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgInvalidEmail)
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgPasswordTooShort)
	}

	// email重複チェック
	_, err := v.users.FindByEmail(ctx, email)
	if err == nil {
		return usecase.NewHTTPError(http.StatusConflict, usecase.ErrMsgEmailAlreadyExists)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return usecase.NewInternalError(err)
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgLoginRequired)
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.ErrMsgInvalidEmail)
	}

	return nil
}
