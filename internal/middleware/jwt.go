package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/filmoteca/catalog-api/internal/utils"
)

// Context keys under which JWTAuth stores verified claims.
const (
	CtxUserID   = "user_id"
	CtxUserName = "user_name"
	CtxIsAdmin  = "is_admin"
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's claims into the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// should wrap protected routes so that handlers can access authenticated
// user information via c.Get(CtxUserID) and c.Get(CtxIsAdmin).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Store the verified claims in the context for handlers and
			// downstream middleware.
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUserName, claims.Name)
			c.Set(CtxIsAdmin, claims.IsAdmin)
			return next(c)
		}
	}
}

// RequireAdmin returns a middleware that enforces the admin flag carried in
// the session token.  It assumes JWTAuth ran earlier and stored the flag
// under CtxIsAdmin.  Non-admin users receive a 403 Forbidden response.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdmin).(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
			}
			return next(c)
		}
	}
}
