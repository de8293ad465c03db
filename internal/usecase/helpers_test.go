package usecase_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 連番ID
type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// HTTPErrorのstatusとmessageを確認
func assertHTTPError(t *testing.T, err error, status int, msg string) {
	t.Helper()

	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected *usecase.HTTPError, got %T: %v", err, err)
	assert.Equal(t, status, he.Status)
	if msg != "" {
		assert.Equal(t, msg, he.Message)
	}
}

func assertBadRequest(t *testing.T, err error, msg string) {
	t.Helper()
	assertHTTPError(t, err, http.StatusBadRequest, msg)
}
