package handler

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// userid ヘッダ（カート・チェックアウト）
const HeaderUserID = "userid"

// 成功レスポンスの共通形
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// 失敗レスポンスの共通形。stackは本番以外の500だけ
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

func writeOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, SuccessResponse{Success: true, Data: data})
}

func writeFail(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: msg})
}

// 4xxはここでレスポンスにする。500はechoのHTTPErrorHandlerに渡す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
		return writeFail(c, he.Status, he.Message)
	}

	//500
	return err
}

func userIDFromHeader(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	return id, id != ""
}

// JSONの数値を正の整数として読む。小数・未指定はfalse
func intFromNumber(v *float64) (int, bool) {
	if v == nil {
		return 0, false
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// NewHTTPErrorHandler はecho全体のエラーを共通の形にする。
// exposeStackがtrueなら500に元エラーを付ける。
func NewHTTPErrorHandler(exposeStack bool, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		res := ErrorResponse{Success: false, Error: "Internal server error"}

		var ee *echo.HTTPError
		if he, ok := usecase.AsHTTPError(err); ok {
			status = he.Status
			res.Error = he.Message
		} else if errors.As(err, &ee) {
			status = ee.Code
			if msg, ok := ee.Message.(string); ok {
				res.Error = msg
			} else {
				res.Error = http.StatusText(ee.Code)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			if exposeStack {
				res.Stack = err.Error()
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, res)
		}
		if werr != nil {
			log.Warn("write error response", zap.Error(werr))
		}
	}
}
