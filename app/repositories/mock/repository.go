package mock

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"lotrblog/app/models"
	"lotrblog/app/repositories"
)

// Store is an in-memory repositories.Store for tests.
type Store struct {
	posts         map[int64]models.Post
	comments      map[int64]models.Comment
	nextPostID    int64
	nextCommentID int64
	mutex         sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		posts:         make(map[int64]models.Post),
		comments:      make(map[int64]models.Comment),
		nextPostID:    1,
		nextCommentID: 1,
	}
}

func (m *Store) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int64]models.Post)
	m.comments = make(map[int64]models.Comment)
	m.nextPostID = 1
	m.nextCommentID = 1
}

func (m *Store) Close() error {
	return nil
}

func (m *Store) Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for column := range filter {
		if column != "id" && column != "title" && column != "contents" {
			return nil, repositories.ErrUnknownFilter
		}
	}

	posts := make([]models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		if v, ok := filter["id"]; ok && v != strconv.FormatInt(post.ID, 10) {
			continue
		}
		if v, ok := filter["title"]; ok && v != post.Title {
			continue
		}
		if v, ok := filter["contents"]; ok && v != post.Contents {
			continue
		}
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *Store) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *Store) Insert(ctx context.Context, in models.PostInput) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	id := m.nextPostID
	m.nextPostID++

	ts := time.Now().UTC()
	post := models.Post{ID: id, CreatedAt: ts, UpdatedAt: ts}
	in.Apply(&post)
	m.posts[id] = post
	return id, nil
}

func (m *Store) Update(ctx context.Context, id int64, in models.PostInput) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return 0, nil
	}
	in.Apply(&post)
	post.UpdatedAt = time.Now().UTC()
	m.posts[id] = post
	return 1, nil
}

func (m *Store) Remove(ctx context.Context, id int64) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return 0, nil
	}
	delete(m.posts, id)
	for commentID, comment := range m.comments {
		if comment.PostID == id {
			delete(m.comments, commentID)
		}
	}
	return 1, nil
}

func (m *Store) FindPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[postID]
	if !exists {
		return nil, repositories.ErrNotFound
	}

	comments := make([]models.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comment.Post = post.Title
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *Store) InsertComment(ctx context.Context, postID int64, in models.CommentInput) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[postID]; !exists {
		return 0, repositories.ErrNotFound
	}

	id := m.nextCommentID
	m.nextCommentID++

	ts := time.Now().UTC()
	comment := in.NewComment(postID)
	comment.ID = id
	comment.CreatedAt = ts
	comment.UpdatedAt = ts
	m.comments[id] = comment
	return id, nil
}

func (m *Store) FindCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}
