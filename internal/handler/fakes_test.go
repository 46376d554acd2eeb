package handler

// In-memory store fakes used by the handler tests.  They mirror the
// repository semantics: sentinel errors, lowercase emails, newest-first
// search over title and genre, and partial movie updates.

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/filmoteca/catalog-api/internal/model"
	"github.com/filmoteca/catalog-api/internal/repository"
	"github.com/filmoteca/catalog-api/internal/utils"
)

type fakeUserStore struct {
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, password string, isAdmin bool, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := f.byEmail[email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type fakeMovieStore struct {
	items map[string]model.Movie
	clock time.Time
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{
		items: make(map[string]model.Movie),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so the newest-first ordering
// is deterministic.
func (f *fakeMovieStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeMovieStore) Search(_ context.Context, q string) ([]model.Movie, error) {
	q = strings.ToLower(q)
	out := make([]model.Movie, 0)
	for _, m := range f.items {
		if q == "" ||
			strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Genre), q) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMovieStore) GetByID(_ context.Context, id string) (model.Movie, error) {
	m, ok := f.items[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return m, nil
}

func (f *fakeMovieStore) Create(_ context.Context, m model.Movie) (model.Movie, error) {
	m.ID = primitive.NewObjectID()
	now := f.tick()
	m.CreatedAt = now
	m.UpdatedAt = now
	f.items[m.ID.Hex()] = m
	return m, nil
}

func (f *fakeMovieStore) Update(_ context.Context, id string, upd model.MovieUpdate) (model.Movie, error) {
	m, ok := f.items[id]
	if !ok {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Year != nil {
		m.Year = upd.Year
	}
	if upd.Director != nil {
		m.Director = *upd.Director
	}
	if upd.Genre != nil {
		m.Genre = *upd.Genre
	}
	if upd.Synopsis != nil {
		m.Synopsis = *upd.Synopsis
	}
	if upd.Image != nil {
		m.Image = *upd.Image
	}
	m.UpdatedAt = f.tick()
	f.items[id] = m
	return m, nil
}

func (f *fakeMovieStore) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(f.items, id)
	return nil
}
