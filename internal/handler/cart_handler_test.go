package handler_test

import (
	"net/http"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Scenario(t *testing.T) {
	e := newTestServer(t)

	rec, env := do(t, e, request{method: http.MethodPost, path: "/cart", userID: "u1",
		body: map[string]interface{}{"productId": "p1", "qty": 2}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	rec, env = do(t, e, request{method: http.MethodGet, path: "/cart", userID: "u1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartDTO](t, env.Data)
	assert.Equal(t, "u1", cart.UserID)
	assert.Equal(t, 39.98, cart.Subtotal)
	assert.Equal(t, 3.2, cart.Tax)
	assert.Equal(t, 43.18, cart.Total)

	_, env = do(t, e, request{method: http.MethodPost, path: "/cart", userID: "u1",
		body: map[string]interface{}{"productId": "p1", "qty": 1}})
	cart = decode[cartDTO](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 59.97, cart.Subtotal)

	lineID := cart.Items[0].ID

	// 0は1に丸められる
	rec, env = do(t, e, request{method: http.MethodPut, path: "/cart/" + lineID, userID: "u1",
		body: map[string]interface{}{"qty": 0}})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartDTO](t, env.Data)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	rec, env = do(t, e, request{method: http.MethodDelete, path: "/cart/" + lineID, userID: "u1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartDTO](t, env.Data)
	assert.Empty(t, cart.Items)

	rec, env = do(t, e, request{method: http.MethodDelete, path: "/cart", userID: "u1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartDTO](t, env.Data)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCart_Errors(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name   string
		req    request
		status int
		msg    string
	}{
		{"get without header", request{method: http.MethodGet, path: "/cart"}, http.StatusBadRequest, usecase.ErrMsgUserIDRequired},
		{"clear without header", request{method: http.MethodDelete, path: "/cart"}, http.StatusBadRequest, usecase.ErrMsgUserIDRequired},
		{"add missing qty", request{method: http.MethodPost, path: "/cart", userID: "u1",
			body: map[string]interface{}{"productId": "p1"}}, http.StatusBadRequest, usecase.ErrMsgAddCartRequired},
		{"add fractional qty", request{method: http.MethodPost, path: "/cart", userID: "u1",
			body: map[string]interface{}{"productId": "p1", "qty": 1.5}}, http.StatusBadRequest, usecase.ErrMsgQuantityPositive},
		{"add zero qty", request{method: http.MethodPost, path: "/cart", userID: "u1",
			body: map[string]interface{}{"productId": "p1", "qty": 0}}, http.StatusBadRequest, usecase.ErrMsgQuantityPositive},
		{"add unknown product", request{method: http.MethodPost, path: "/cart", userID: "u1",
			body: map[string]interface{}{"productId": "p404", "qty": 1}}, http.StatusNotFound, usecase.ErrMsgProductNotFound},
		{"update missing qty", request{method: http.MethodPut, path: "/cart/line", userID: "u1",
			body: map[string]interface{}{}}, http.StatusBadRequest, usecase.ErrMsgQuantityRequired},
		{"update unknown cart", request{method: http.MethodPut, path: "/cart/line", userID: "ghost",
			body: map[string]interface{}{"qty": 2}}, http.StatusNotFound, usecase.ErrMsgCartItemNotFound},
		{"remove unknown cart", request{method: http.MethodDelete, path: "/cart/line", userID: "ghost"}, http.StatusNotFound, usecase.ErrMsgCartNotFound},
		{"malformed body", request{method: http.MethodPost, path: "/cart", userID: "u1", rawBody: "{"}, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, e, tt.req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
			assert.Equal(t, tt.msg, env.Error)
		})
	}
}
