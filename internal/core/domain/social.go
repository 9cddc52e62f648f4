package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrSelfFollow = errors.New("cannot follow yourself")

// Post is an entry in the community feed.
type Post struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	AuthorID   string    `json:"authorId" bson:"author_id"`
	AuthorName string    `json:"authorName" bson:"author_name"`
	Content    string    `json:"content" bson:"content"`
	ImageURL   string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Likes      int64     `json:"likes" bson:"likes"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}
