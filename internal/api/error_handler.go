package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// genericFaultMessage はインフラ障害時に返す汎用メッセージ
// 内部のエラー内容は呼び出し側へ漏らさない
const genericFaultMessage = "一時的な障害が発生しました。しばらくしてから再試行してください"

// CustomHTTPErrorHandler は最上位のエラー境界
// パイプラインから上がってきたドメインエラー（バリデーション等）を
// HTTPステータスへ対応付け、それ以外のインフラ障害は汎用メッセージで返す
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := genericFaultMessage

	if kind, ok := domainerr.KindOf(err); ok {
		message = err.Error()
		switch kind {
		case domainerr.KindValidation:
			code = http.StatusBadRequest
		case domainerr.KindNotFound:
			code = http.StatusNotFound
		case domainerr.KindConflict:
			code = http.StatusConflict
		case domainerr.KindInvalidState, domainerr.KindBusinessRule:
			code = http.StatusUnprocessableEntity
		}
	} else if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// インフラ障害は相関IDを含む全コンテキストを記録する
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
