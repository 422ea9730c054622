package repositories

import (
	"context"
	"fmt"
	"sort"

	"lotrblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// Find lists posts matching the filter.
func (s *BadgerStore) Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	match, err := postFilterMatcher(filter)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0)
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var post models.Post
			if err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			if match(post) {
				posts = append(posts, post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// keys sort as strings, so "post:10" comes before "post:2"
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

// FindByID retrieves a post by ID
func (s *BadgerStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	var post *models.Post
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Insert creates a new post
func (s *BadgerStore) Insert(ctx context.Context, in models.PostInput) (int64, error) {
	id, err := nextID(s.postSeq)
	if err != nil {
		return 0, err
	}

	ts := now()
	post := models.Post{ID: id, CreatedAt: ts, UpdatedAt: ts}
	in.Apply(&post)

	data, err := marshalEntity(post)
	if err != nil {
		return 0, err
	}

	err = s.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(postKey(id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces title and contents of an existing post
func (s *BadgerStore) Update(ctx context.Context, id int64, in models.PostInput) (int64, error) {
	var affected int64
	err := s.update(ctx, func(txn *badger.Txn) error {
		affected = 0
		post, err := getPost(txn, id)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		in.Apply(post)
		post.UpdatedAt = now()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(id), data); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Remove deletes a post and all its comments
func (s *BadgerStore) Remove(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := s.update(ctx, func(txn *badger.Txn) error {
		affected = 0
		if _, err := getPost(txn, id); err == ErrNotFound {
			return nil
		} else if err != nil {
			return err
		}

		comments, err := listComments(txn, id)
		if err != nil {
			return err
		}
		for _, comment := range comments {
			if err := txn.Delete(commentKey(comment.ID)); err != nil {
				return fmt.Errorf("failed to delete comment %d: %w", comment.ID, err)
			}
		}

		if err := txn.Delete(postKey(id)); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func getPost(txn *badger.Txn, id int64) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	}); err != nil {
		return nil, err
	}
	return &post, nil
}
