package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// MetricsBasicAuth は/metricsエンドポイントをBasic認証で保護する。
// 認証情報が未設定の場合は認証をスキップする。
func MetricsBasicAuth(username, password string) echo.MiddlewareFunc {
	if username == "" || password == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return echomw.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		return userMatch && passMatch, nil
	})
}
