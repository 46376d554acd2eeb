package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // built-in Echo middleware (CORS)

	"github.com/filmoteca/catalog-api/internal/handler"    // import the handlers that implement business logic
	"github.com/filmoteca/catalog-api/internal/middleware" // import middleware for caching responses
)

// RegisterRoutes installs global middleware and the routes that do not
// require authentication.  CORS is open to any origin because browser
// frontends call this API cross-origin.
func RegisterRoutes(e *echo.Echo) {
	e.Use(echomw.CORS())

	// The /healthz endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated catalog reads under
// /api/movies.  Both routes go through the Redis response cache; the cache
// degrades to a pass-through when Redis is unavailable.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, cache *middleware.Cache) {
	g := e.Group("/api/movies", cache.Middleware())
	g.GET("", m.List)
	g.GET("/:id", m.Get)
}

// RegisterUploads serves stored movie images as static files.
func RegisterUploads(e *echo.Echo, dir string) {
	e.Static("/uploads", dir)
}
