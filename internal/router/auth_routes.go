package router

import (
	"github.com/labstack/echo/v4"

	"github.com/filmoteca/catalog-api/internal/handler"
)

// RegisterAuth registers the registration and login endpoints under
// /api/auth.  Neither requires an existing session; login is where session
// tokens are issued.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}
