// Package handler exposes HTTP handlers for both public and admin endpoints.
// This file defines the public catalog API: anyone can list and read movies
// without authentication.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmoteca/catalog-api/internal/repository"
)

// MovieHandler serves the unauthenticated catalog reads.
type MovieHandler struct {
	Movies MovieStore
}

func NewMovieHandler(movies MovieStore) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

// List handles GET /api/movies.  An optional ?q= filters by case-insensitive
// substring over title or genre; results are newest first.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.Search(ctx, c.QueryParam("q"))
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /api/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}
