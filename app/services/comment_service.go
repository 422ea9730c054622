package services

import (
	"context"
	"errors"
	"fmt"

	"lotrblog/app/models"
	"lotrblog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	store repositories.Store
}

// NewCommentService creates a new CommentService
func NewCommentService(store repositories.Store) *CommentService {
	return &CommentService{store: store}
}

// ListComments returns the comments of a post, each carrying the post title.
func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	comments, err := s.store.FindPostComments(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}
	if comments == nil {
		comments = make([]models.Comment, 0)
	}
	return comments, nil
}

// CreateComment attaches a comment to an existing post and returns it as
// stored. The post is checked before the input is validated.
func (s *CommentService) CreateComment(ctx context.Context, postID int64, in models.CommentInput) (*models.Comment, error) {
	_, err := s.store.FindByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify post %d: %w", postID, err)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.InsertComment(ctx, postID, in)
	if errors.Is(err, repositories.ErrNotFound) {
		// post removed after the check
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment, err := s.store.FindCommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back comment %d: %w", id, err)
	}
	if comment == nil {
		return nil, fmt.Errorf("failed to read back comment %d: %w", id, repositories.ErrNotFound)
	}
	return comment, nil
}
