package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/filmoteca/catalog-api/internal/model"
)

// MovieRepo persists catalog entries in the "movies" collection.
type MovieRepo struct {
	movies *mongo.Collection
}

func NewMovieRepo(db *mongo.Database) *MovieRepo {
	return &MovieRepo{movies: db.Collection("movies")}
}

// Search returns movies whose title or genre contains q as a case-insensitive
// substring, newest first.  An empty q returns the whole catalog.
func (r *MovieRepo) Search(ctx context.Context, q string) ([]model.Movie, error) {
	filter := bson.M{}
	if q != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"genre": re},
		}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.movies.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Movie, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single movie.  A malformed id is reported the same way
// as a missing document.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Movie{}, ErrMovieNotFound
	}
	var m model.Movie
	err = r.movies.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create inserts a new movie with fresh timestamps and returns the stored
// record.
func (r *MovieRepo) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	now := time.Now().UTC()
	m.ID = primitive.NilObjectID
	m.CreatedAt = now
	m.UpdatedAt = now
	res, err := r.movies.InsertOne(ctx, m)
	if err != nil {
		return model.Movie{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

// Update applies a partial update and returns the document as it stands
// afterwards.  Nil fields in upd are left untouched.
func (r *MovieRepo) Update(ctx context.Context, id string, upd model.MovieUpdate) (model.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Movie{}, ErrMovieNotFound
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.Director != nil {
		set["director"] = *upd.Director
	}
	if upd.Genre != nil {
		set["genre"] = *upd.Genre
	}
	if upd.Synopsis != nil {
		set["synopsis"] = *upd.Synopsis
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m model.Movie
	err = r.movies.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Delete removes a movie permanently.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMovieNotFound
	}
	res, err := r.movies.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMovieNotFound
	}
	return nil
}
