package services

import (
	"context"
	"errors"
	"fmt"

	"lotrblog/app/models"
	"lotrblog/app/repositories"
)

// ErrPostNotFound is returned when the addressed post does not exist.
var ErrPostNotFound = errors.New("post not found")

// PostService handles business logic for blog posts
type PostService struct {
	store repositories.Store
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store) *PostService {
	return &PostService{store: store}
}

// ListPosts returns every post matching filter. The result is never nil.
func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts, err := s.store.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = make([]models.Post, 0)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return post, nil
}

// CreatePost validates and stores a post, then returns it as stored.
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.readBack(ctx, id)
}

// UpdatePost replaces title and contents of an existing post. The post must
// exist before the input is validated and the write attempted.
func (s *PostService) UpdatePost(ctx context.Context, id int64, in models.PostInput) (*models.Post, error) {
	if _, err := s.GetPost(ctx, id); err != nil {
		return nil, err
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	return s.readBack(ctx, id)
}

// DeletePost removes a post and returns the record read just before
// removal. The returned post is nil when it vanished between the read and
// the removal but the removal still affected a row.
func (s *PostService) DeletePost(ctx context.Context, id int64) (*models.Post, error) {
	deleted, err := s.store.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to read post %d before delete: %w", id, err)
	}

	affected, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	return deleted, nil
}

// readBack loads a just-written post. Its absence is a store failure, not a
// missing post.
func (s *PostService) readBack(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back post %d: %w", id, err)
	}
	if post == nil {
		return nil, fmt.Errorf("failed to read back post %d: %w", id, repositories.ErrNotFound)
	}
	return post, nil
}
