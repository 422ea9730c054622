package repositories

import (
	"context"

	"lotrblog/app/models"
)

// Store is the data-access contract consumed by the posts service.
// Implementations must be safe for concurrent use.
type Store interface {
	// Find returns every post matching all filter columns, ordered by id.
	Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	// FindByID returns ErrNotFound when no post has the id.
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	// Insert stores a new post and returns its id.
	Insert(ctx context.Context, in models.PostInput) (int64, error)
	// Update replaces title and contents and returns the affected count.
	Update(ctx context.Context, id int64, in models.PostInput) (int64, error)
	// Remove deletes the post with its comments and returns the affected count.
	Remove(ctx context.Context, id int64) (int64, error)
	// FindPostComments returns ErrNotFound when the post does not exist.
	FindPostComments(ctx context.Context, postID int64) ([]models.Comment, error)
	// InsertComment returns ErrNotFound when the post does not exist.
	InsertComment(ctx context.Context, postID int64, in models.CommentInput) (int64, error)
	// FindCommentByID returns ErrNotFound when no comment has the id.
	FindCommentByID(ctx context.Context, id int64) (*models.Comment, error)

	Close() error
}

//go:generate mockgen -source=interfaces.go -destination=mock/store_mock.go -package=mock
