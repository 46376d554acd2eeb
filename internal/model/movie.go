package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is a catalog entry.  Only the title is mandatory; Year is a pointer
// so that an absent year is distinguishable from year zero.  Image holds
// either an external URL or a relative /uploads path for a stored file.
type Movie struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Year      *int               `bson:"year,omitempty" json:"year,omitempty"`
	Director  string             `bson:"director,omitempty" json:"director,omitempty"`
	Genre     string             `bson:"genre,omitempty" json:"genre,omitempty"`
	Synopsis  string             `bson:"synopsis,omitempty" json:"synopsis,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MovieUpdate captures a partial update: nil fields are left untouched.
type MovieUpdate struct {
	Title    *string
	Year     *int
	Director *string
	Genre    *string
	Synopsis *string
	Image    *string
}
