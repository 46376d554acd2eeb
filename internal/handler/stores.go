package handler

import (
	"context"

	"github.com/filmoteca/catalog-api/internal/model"
)

// UserStore is the subset of the user repository the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, isAdmin bool, cost int) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// MovieStore is the subset of the movie repository the catalog handlers need.
type MovieStore interface {
	Search(ctx context.Context, q string) ([]model.Movie, error)
	GetByID(ctx context.Context, id string) (model.Movie, error)
	Create(ctx context.Context, m model.Movie) (model.Movie, error)
	Update(ctx context.Context, id string, upd model.MovieUpdate) (model.Movie, error)
	Delete(ctx context.Context, id string) error
}
