package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware は共通ミドルウェアを登録する
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.RequestID())
	e.Use(RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
}
