package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"lotrblog/app/logger"
	"lotrblog/app/models"
)

var postColumns = []string{"id", "title", "contents", "created_at", "updated_at"}

// SQLStore implements Store on sqlite or PostgreSQL.
type SQLStore struct {
	db *DB
}

// NewSQLStore wraps an open connection.
func NewSQLStore(db *DB) *SQLStore {
	db.logger.Debug().Str("dialect", db.dialect).Msg("creating sql store")
	return &SQLStore{db: db}
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Find lists posts whose columns equal every filter value.
func (s *SQLStore) Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	where := sq.Eq{}
	matchNone := false
	for column, value := range filter {
		switch column {
		case columnID:
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				matchNone = true
				continue
			}
			where[columnID] = id
		case columnTitle, columnContents:
			where[column] = value
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, column)
		}
	}
	if matchNone {
		return make([]models.Post, 0), nil
	}

	query, args, err := s.db.builder.
		Select(postColumns...).
		From("posts").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*SQLStore.Find").Msg("error executing query")
		return nil, fmt.Errorf("error executing sql query: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Contents, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post rows: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan post rows: %w", err)
	}

	return posts, nil
}

// FindByID retrieves a single post.
func (s *SQLStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := s.db.builder.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var post models.Post
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&post.ID, &post.Title, &post.Contents, &post.CreatedAt, &post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStore.FindByID").Msg("error scanning post")
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	return &post, nil
}

// Insert stores a new post and returns the generated id.
func (s *SQLStore) Insert(ctx context.Context, in models.PostInput) (int64, error) {
	ts := now()
	query, args, err := s.db.builder.
		Insert("posts").
		Columns("title", "contents", "created_at", "updated_at").
		Values(in.Title, in.Contents, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sql query: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStore.Insert").Msg("error inserting post")
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}

	return id, nil
}

// Update replaces title and contents of the post.
func (s *SQLStore) Update(ctx context.Context, id int64, in models.PostInput) (int64, error) {
	query, args, err := s.db.builder.
		Update("posts").
		Set("title", in.Title).
		Set("contents", in.Contents).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sql query: %w", err)
	}

	return s.exec(ctx, "*SQLStore.Update", query, args)
}

// Remove deletes the post. Comments go with it through ON DELETE CASCADE.
func (s *SQLStore) Remove(ctx context.Context, id int64) (int64, error) {
	query, args, err := s.db.builder.
		Delete("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sql query: %w", err)
	}

	return s.exec(ctx, "*SQLStore.Remove", query, args)
}

// FindPostComments lists the comments of a post joined with its title.
func (s *SQLStore) FindPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	query, args, err := s.db.builder.
		Select("c.id", "c.text", "c.post_id", "p.title", "c.created_at", "c.updated_at").
		From("comments c").
		Join("posts p ON p.id = c.post_id").
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStore.FindPostComments").Msg("error executing query")
		return nil, fmt.Errorf("error executing sql query: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.PostID, &c.Post, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment rows: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan comment rows: %w", err)
	}

	return comments, nil
}

// InsertComment stores a comment and returns the generated id.
func (s *SQLStore) InsertComment(ctx context.Context, postID int64, in models.CommentInput) (int64, error) {
	ts := now()
	comment := in.NewComment(postID)
	query, args, err := s.db.builder.
		Insert("comments").
		Columns("text", "post_id", "created_at", "updated_at").
		Values(comment.Text, comment.PostID, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sql query: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStore.InsertComment").Msg("error inserting comment")
		return 0, fmt.Errorf("failed to insert comment: %w", err)
	}

	return id, nil
}

// FindCommentByID retrieves a single comment.
func (s *SQLStore) FindCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	query, args, err := s.db.builder.
		Select("id", "text", "post_id", "created_at", "updated_at").
		From("comments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var c models.Comment
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Text, &c.PostID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStore.FindCommentByID").Msg("error scanning comment")
		return nil, fmt.Errorf("failed to scan comment row: %w", err)
	}

	return &c, nil
}

func (s *SQLStore) exec(ctx context.Context, fn string, query string, args []any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error executing statement")
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
