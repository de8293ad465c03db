package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/memory"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthUsecase() (*usecase.AuthUsecase, *memory.UserStore) {
	users := memory.NewUserStore()
	cfg := config.Config{
		JWTSecret:   testSecret,
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		AdminEmails: []string{"admin@example.com"},
	}
	// 有効期限を検証できるよう現在時刻を使う
	clock := fixedClock{t: time.Now().Truncate(time.Second)}
	return usecase.NewAuthUsecase(cfg, users, validator.NewAuthValidator(users), &seqIDGen{prefix: "user"}, clock), users
}

func TestAuth_SignupThenLogin(t *testing.T) {
	uc, users := newAuthUsecase()
	ctx := context.Background()

	res, err := uc.Signup(ctx, usecase.AuthSignupRequest{Name: "Jane", Email: "Jane@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.User.ID)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, string(model.RoleUser), res.User.Role)
	assert.NotEmpty(t, res.Token)

	// 平文で保存しない
	stored, err := users.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))

	login, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", login.User.ID)

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(login.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, float64(login.ExpiresAt.Unix()), claims["exp"])
}

func TestAuth_Signup_AdminEmailGetsAdminRole(t *testing.T) {
	uc, _ := newAuthUsecase()

	res, err := uc.Signup(context.Background(), usecase.AuthSignupRequest{Name: "Root", Email: "ADMIN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdmin), res.User.Role)
}

func TestAuth_Signup_Errors(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	_, err := uc.Signup(ctx, usecase.AuthSignupRequest{Email: "a@example.com", Password: "password123"})
	assertBadRequest(t, err, usecase.ErrMsgSignupRequired)

	_, err = uc.Signup(ctx, usecase.AuthSignupRequest{Name: "A", Email: "nope", Password: "password123"})
	assertBadRequest(t, err, usecase.ErrMsgInvalidEmail)

	_, err = uc.Signup(ctx, usecase.AuthSignupRequest{Name: "A", Email: "a@example.com", Password: "short"})
	assertBadRequest(t, err, usecase.ErrMsgPasswordTooShort)

	_, err = uc.Signup(ctx, usecase.AuthSignupRequest{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, usecase.AuthSignupRequest{Name: "B", Email: "A@example.com", Password: "password456"})
	assertHTTPError(t, err, http.StatusConflict, usecase.ErrMsgEmailAlreadyExists)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	_, err := uc.Signup(ctx, usecase.AuthSignupRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, usecase.AuthLoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assertHTTPError(t, err, http.StatusUnauthorized, usecase.ErrMsgInvalidCredentials)

	_, err = uc.Login(ctx, usecase.AuthLoginRequest{Email: "ghost@example.com", Password: "password123"})
	assertHTTPError(t, err, http.StatusUnauthorized, usecase.ErrMsgInvalidCredentials)

	_, err = uc.Login(ctx, usecase.AuthLoginRequest{Email: "jane@example.com"})
	assertBadRequest(t, err, usecase.ErrMsgLoginRequired)
}

func TestAuth_Profile(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	res, err := uc.Signup(ctx, usecase.AuthSignupRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	p, err := uc.Profile(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.Name)

	_, err = uc.Profile(ctx, "missing")
	assertHTTPError(t, err, http.StatusNotFound, usecase.ErrMsgUserNotFound)

	_, err = uc.Profile(ctx, "")
	assertHTTPError(t, err, http.StatusUnauthorized, usecase.ErrMsgUnauthorized)
}
