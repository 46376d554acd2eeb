package repository

// These tests exercise the real repositories against a running MongoDB.
// They are skipped unless MONGO_TEST_URI is set, e.g.
//
//	MONGO_TEST_URI=mongodb://127.0.0.1:27017/catalog_test go test ./internal/repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/catalog-api/internal/database"
	"github.com/filmoteca/catalog-api/internal/model"
)

func testDB(t *testing.T) (*UserRepo, *MovieRepo, context.Context) {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	db, err := database.Connect(uri)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, database.EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Collection("users").Drop(ctx)
		_ = db.Collection("movies").Drop(ctx)
	})
	return NewUserRepo(db), NewMovieRepo(db), ctx
}

func TestUserRepo_CreateAndFind(t *testing.T) {
	users, _, ctx := testDB(t)

	email := fmt.Sprintf("ada+%d@example.com", time.Now().UnixNano())
	created, err := users.Create(ctx, "Ada", email, "hunter2", false, 4)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	found, err := users.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.NotEqual(t, "hunter2", found.PasswordHash)

	// Second registration with the same email must hit the unique index.
	_, err = users.Create(ctx, "Ada", email, "hunter2", false, 4)
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = users.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMovieRepo_CRUDAndSearch(t *testing.T) {
	_, movies, ctx := testDB(t)

	year := 2014
	inter, err := movies.Create(ctx, model.Movie{Title: "Interstellar", Year: &year, Genre: "Sci-Fi"})
	require.NoError(t, err)
	_, err = movies.Create(ctx, model.Movie{Title: "Amadeus", Genre: "Drama"})
	require.NoError(t, err)

	all, err := movies.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Amadeus", all[0].Title) // newest first

	hits, err := movies.Search(ctx, "INTER")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Interstellar", hits[0].Title)

	genre := "Adventure"
	updated, err := movies.Update(ctx, inter.ID.Hex(), model.MovieUpdate{Genre: &genre})
	require.NoError(t, err)
	assert.Equal(t, "Adventure", updated.Genre)
	assert.Equal(t, "Interstellar", updated.Title)
	require.NotNil(t, updated.Year)
	assert.Equal(t, 2014, *updated.Year)

	_, err = movies.Update(ctx, "ffffffffffffffffffffffff", model.MovieUpdate{Genre: &genre})
	assert.ErrorIs(t, err, ErrMovieNotFound)

	require.NoError(t, movies.Delete(ctx, inter.ID.Hex()))
	_, err = movies.GetByID(ctx, inter.ID.Hex())
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.ErrorIs(t, movies.Delete(ctx, inter.ID.Hex()), ErrMovieNotFound)

	_, err = movies.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
