package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lotrblog/app/models"
	"lotrblog/app/repositories"
	"lotrblog/app/repositories/mock"
)

var errStore = errors.New("connection refused")

func TestPostService(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	service := NewPostService(store)

	t.Run("create and get", func(t *testing.T) {
		store.Clear()

		created, err := service.CreatePost(ctx, models.PostInput{Title: "Fellowship", Contents: "Nine walkers"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := service.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		store.Clear()

		_, err := service.CreatePost(ctx, models.PostInput{Title: "only title"})
		assert.ErrorIs(t, err, models.ErrValidation)

		posts, err := service.ListPosts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("get missing", func(t *testing.T) {
		store.Clear()

		_, err := service.GetPost(ctx, 42)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("list filters", func(t *testing.T) {
		store.Clear()
		_, err := service.CreatePost(ctx, models.PostInput{Title: "A", Contents: "x"})
		require.NoError(t, err)
		_, err = service.CreatePost(ctx, models.PostInput{Title: "B", Contents: "x"})
		require.NoError(t, err)

		posts, err := service.ListPosts(ctx, models.PostFilter{"title": "B"})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "B", posts[0].Title)
	})

	t.Run("update", func(t *testing.T) {
		store.Clear()
		created, err := service.CreatePost(ctx, models.PostInput{Title: "A", Contents: "x"})
		require.NoError(t, err)

		updated, err := service.UpdatePost(ctx, created.ID, models.PostInput{Title: "A2", Contents: "y"})
		require.NoError(t, err)
		assert.Equal(t, "A2", updated.Title)
		assert.Equal(t, "y", updated.Contents)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("update missing post with invalid body is not found", func(t *testing.T) {
		store.Clear()

		_, err := service.UpdatePost(ctx, 7, models.PostInput{})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("update existing post with invalid body", func(t *testing.T) {
		store.Clear()
		created, err := service.CreatePost(ctx, models.PostInput{Title: "A", Contents: "x"})
		require.NoError(t, err)

		_, err = service.UpdatePost(ctx, created.ID, models.PostInput{Title: "A"})
		assert.ErrorIs(t, err, models.ErrValidation)

		got, err := service.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "x", got.Contents)
	})

	t.Run("delete", func(t *testing.T) {
		store.Clear()
		created, err := service.CreatePost(ctx, models.PostInput{Title: "A", Contents: "x"})
		require.NoError(t, err)

		deleted, err := service.DeletePost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		_, err = service.GetPost(ctx, created.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)

		_, err = service.DeletePost(ctx, created.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostServiceStoreFailures(t *testing.T) {
	ctx := context.Background()
	post := &models.Post{ID: 1, Title: "A", Contents: "x"}
	input := models.PostInput{Title: "A", Contents: "x"}

	tests := []struct {
		name    string
		prepare func(m *mock.MockStore)
		call    func(s *PostService) error
		wantErr error
	}{
		{
			name: "list",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errStore)
			},
			call: func(s *PostService) error {
				_, err := s.ListPosts(ctx, nil)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "list nil becomes empty",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			call: func(s *PostService) error {
				posts, err := s.ListPosts(ctx, nil)
				if posts == nil {
					return errors.New("nil slice")
				}
				return err
			},
		},
		{
			name: "get",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, errStore)
			},
			call: func(s *PostService) error {
				_, err := s.GetPost(ctx, 1)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "create insert fails",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().Insert(gomock.Any(), input).Return(int64(0), errStore)
			},
			call: func(s *PostService) error {
				_, err := s.CreatePost(ctx, input)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "create read back missing is a failure",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().Insert(gomock.Any(), input).Return(int64(5), nil)
				m.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, repositories.ErrNotFound)
			},
			call: func(s *PostService) error {
				_, err := s.CreatePost(ctx, input)
				if errors.Is(err, ErrPostNotFound) {
					return errors.New("read back reported as not found")
				}
				return err
			},
			wantErr: repositories.ErrNotFound,
		},
		{
			name: "update on missing post never writes",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, repositories.ErrNotFound)
				m.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			call: func(s *PostService) error {
				_, err := s.UpdatePost(ctx, 1, input)
				return err
			},
			wantErr: ErrPostNotFound,
		},
		{
			name: "update existence check fails",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, errStore)
			},
			call: func(s *PostService) error {
				_, err := s.UpdatePost(ctx, 1, input)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "update affects no rows",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post, nil)
				m.EXPECT().Update(gomock.Any(), int64(1), input).Return(int64(0), nil)
			},
			call: func(s *PostService) error {
				_, err := s.UpdatePost(ctx, 1, input)
				return err
			},
			wantErr: ErrPostNotFound,
		},
		{
			name: "update write fails",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post, nil)
				m.EXPECT().Update(gomock.Any(), int64(1), input).Return(int64(0), errStore)
			},
			call: func(s *PostService) error {
				_, err := s.UpdatePost(ctx, 1, input)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "delete pre-read fails",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, errStore)
				m.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)
			},
			call: func(s *PostService) error {
				_, err := s.DeletePost(ctx, 1)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "delete remove fails",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(post, nil)
				m.EXPECT().Remove(gomock.Any(), int64(1)).Return(int64(0), errStore)
			},
			call: func(s *PostService) error {
				_, err := s.DeletePost(ctx, 1)
				return err
			},
			wantErr: errStore,
		},
		{
			name: "delete count decides over pre-read",
			prepare: func(m *mock.MockStore) {
				m.EXPECT().FindByID(gomock.Any(), int64(1)).Return(nil, repositories.ErrNotFound)
				m.EXPECT().Remove(gomock.Any(), int64(1)).Return(int64(1), nil)
			},
			call: func(s *PostService) error {
				deleted, err := s.DeletePost(ctx, 1)
				if deleted != nil {
					return errors.New("expected nil deleted post")
				}
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock.NewMockStore(ctrl)
			tt.prepare(store)

			err := tt.call(NewPostService(store))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
