package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/memory"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type uuidGen struct{}

func (uuidGen) NewID() string { return uuid.NewString() }

type nowClock struct{}

func (nowClock) Now() time.Time { return time.Now() }

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		GoEnv:       config.EnvDevelopment,
		JWTSecret:   "handler-test-secret",
		JWTTTL:      time.Hour,
		BcryptCost:  bcrypt.MinCost,
		AdminEmails: []string{"admin@example.com"},
	}
	log := zap.NewNop()

	carts := memory.NewCartStore()
	receipts := memory.NewReceiptStore()
	users := memory.NewUserStore()
	products := memory.NewProductStore(memory.SeedProducts())

	checkoutUC := usecase.NewCheckoutUsecase(
		memory.NewTxManager(carts, receipts), receipts, products,
		validator.NewCheckoutValidator(), uuidGen{}, nowClock{}, log, false,
	)
	authUC := usecase.NewAuthUsecase(cfg, users, validator.NewAuthValidator(users), uuidGen{}, nowClock{})

	return server.New(cfg, log, server.Handlers{
		Product:  handler.NewProductHandler(usecase.NewProductUsecase(products)),
		Cart:     handler.NewCartHandler(usecase.NewCartUsecase(carts, products)),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Auth:     handler.NewAuthHandler(authUC),
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Stack   string          `json:"stack"`
}

type request struct {
	method  string
	path    string
	body    interface{}
	userID  string
	bearer  string
	rawBody string
}

func do(t *testing.T, e *echo.Echo, r request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	switch {
	case r.rawBody != "":
		buf.WriteString(r.rawBody)
	case r.body != nil:
		require.NoError(t, json.NewEncoder(&buf).Encode(r.body))
	}

	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if r.userID != "" {
		req.Header.Set(handler.HeaderUserID, r.userID)
	}
	if r.bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+r.bearer)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSON ||
		bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

type cartDTO struct {
	UserID string `json:"userId"`
	Items  []struct {
		ID        string  `json:"id"`
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type receiptDTO struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
