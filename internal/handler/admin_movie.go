package handler

// This file defines the admin-only catalog mutations.  All three endpoints
// sit behind JWTAuth + RequireAdmin.  Create and Update accept multipart
// form data carrying the movie fields plus either an uploaded imageFile or
// an external imageUrl; the uploaded file wins when both are present.

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmoteca/catalog-api/internal/middleware"
	"github.com/filmoteca/catalog-api/internal/model"
	"github.com/filmoteca/catalog-api/internal/queue"
	"github.com/filmoteca/catalog-api/internal/repository"
	"github.com/filmoteca/catalog-api/internal/storage"
)

// MovieAdminHandler bundles dependencies for the catalog mutations.
// PublishEvent is optional: when nil, no events are emitted.  Event
// publishing is best effort and never fails the request.
type MovieAdminHandler struct {
	Movies       MovieStore
	Uploads      *storage.UploadStore
	Cache        *middleware.Cache
	PublishEvent func(ctx context.Context, ev queue.MovieChangedEvent) error
}

func NewMovieAdminHandler(movies MovieStore, uploads *storage.UploadStore, cache *middleware.Cache) *MovieAdminHandler {
	return &MovieAdminHandler{Movies: movies, Uploads: uploads, Cache: cache}
}

// Create handles POST /api/movies.
func (h *MovieAdminHandler) Create(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	m := model.Movie{
		Title:    title,
		Director: strings.TrimSpace(c.FormValue("director")),
		Genre:    strings.TrimSpace(c.FormValue("genre")),
		Synopsis: strings.TrimSpace(c.FormValue("synopsis")),
	}
	if s := strings.TrimSpace(c.FormValue("year")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		m.Year = &n
	}

	image, err := h.resolveImage(c)
	if err != nil {
		return h.imageError(c, err)
	}
	if image != "" {
		m.Image = image
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Movies.Create(ctx, m)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save movie"})
	}

	h.afterMutation(c, "created", saved.ID.Hex(), saved.Title)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "movie": saved})
}

// Update handles PUT /api/movies/:id with partial semantics: only form
// fields that were actually submitted change the document.
func (h *MovieAdminHandler) Update(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}
	has := func(k string) bool { _, ok := vals[k]; return ok }

	var upd model.MovieUpdate
	if has("title") {
		t := strings.TrimSpace(vals.Get("title"))
		if t == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
		}
		upd.Title = &t
	}
	// An empty year field is treated as not supplied, matching the create
	// behavior where a blank year leaves the field unset.
	if s := strings.TrimSpace(vals.Get("year")); has("year") && s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
		}
		upd.Year = &n
	}
	if has("director") {
		v := strings.TrimSpace(vals.Get("director"))
		upd.Director = &v
	}
	if has("genre") {
		v := strings.TrimSpace(vals.Get("genre"))
		upd.Genre = &v
	}
	if has("synopsis") {
		v := strings.TrimSpace(vals.Get("synopsis"))
		upd.Synopsis = &v
	}

	image, err := h.resolveImage(c)
	if err != nil {
		return h.imageError(c, err)
	}
	if image != "" {
		upd.Image = &image
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Movies.Update(ctx, c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie"})
	}

	h.afterMutation(c, "updated", saved.ID.Hex(), saved.Title)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "movie": saved})
}

// Delete handles DELETE /api/movies/:id.
func (h *MovieAdminHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	if err := h.Movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete movie"})
	}

	h.afterMutation(c, "deleted", id, "")
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// resolveImage returns the image reference for the request: the stored path
// of an uploaded imageFile when present, otherwise the imageUrl form value,
// otherwise "".
func (h *MovieAdminHandler) resolveImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("imageFile")
	if err != nil {
		// No file part in the form; fall back to the URL field.
		return strings.TrimSpace(c.FormValue("imageUrl")), nil
	}
	return h.Uploads.Save(fh)
}

func (h *MovieAdminHandler) imageError(c echo.Context, err error) error {
	if errors.Is(err, storage.ErrFileTooLarge) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image exceeds the 5 MiB limit"})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store image"})
}

// afterMutation invalidates the catalog cache and publishes a change event.
// Both are best effort; the mutation already succeeded.
func (h *MovieAdminHandler) afterMutation(c echo.Context, action, movieID, title string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h.Cache.Invalidate(ctx)

	if h.PublishEvent == nil {
		return
	}
	actor, _ := c.Get(middleware.CtxUserID).(string)
	_ = h.PublishEvent(ctx, queue.MovieChangedEvent{
		Action:     action,
		MovieID:    movieID,
		Title:      title,
		ActorID:    actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
