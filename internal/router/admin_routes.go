package router

import (
	"github.com/labstack/echo/v4"

	"github.com/filmoteca/catalog-api/internal/handler"
	"github.com/filmoteca/catalog-api/internal/middleware"
)

// RegisterAdmin registers the catalog mutations under /api/movies.  All
// routes require a valid session token carrying the admin flag; the reads on
// the same prefix stay public and are registered separately.
func RegisterAdmin(e *echo.Echo, h *handler.MovieAdminHandler, jwtSecret string) {
	g := e.Group(
		"/api/movies",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(),
	)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
