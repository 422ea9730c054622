package repositories

import (
	"context"
	"fmt"
	"sort"

	"lotrblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// FindPostComments lists the comments of a post, each tagged with the
// post title.
func (s *BadgerStore) FindPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		post, err := getPost(txn, postID)
		if err != nil {
			return err
		}

		comments, err = listComments(txn, postID)
		if err != nil {
			return err
		}
		for i := range comments {
			comments[i].Post = post.Title
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// InsertComment creates a comment on an existing post
func (s *BadgerStore) InsertComment(ctx context.Context, postID int64, in models.CommentInput) (int64, error) {
	id, err := nextID(s.commentSeq)
	if err != nil {
		return 0, err
	}

	ts := now()
	comment := in.NewComment(postID)
	comment.ID = id
	comment.CreatedAt = ts
	comment.UpdatedAt = ts

	data, err := marshalEntity(comment)
	if err != nil {
		return 0, err
	}

	err = s.update(ctx, func(txn *badger.Txn) error {
		if _, err := getPost(txn, postID); err != nil {
			return err
		}
		return txn.Set(commentKey(id), data)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindCommentByID retrieves a comment by ID
func (s *BadgerStore) FindCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(commentKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func listComments(txn *badger.Txn, postID int64) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(CommentKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var comment models.Comment
		if err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		}); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}
