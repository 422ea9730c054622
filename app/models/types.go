package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a blog post as stored.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment represents a comment attached to a single post.
// Post holds the owning post's title and is only filled when comments
// are listed for a post.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	PostID    int64     `json:"post_id"`
	Post      string    `json:"post,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput is the accepted request body for creating or replacing a post.
type PostInput struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// CommentInput is the accepted request body for creating a comment.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// PostFilter maps post columns to the value they must equal.
type PostFilter map[string]string
