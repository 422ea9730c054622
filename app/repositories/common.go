package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"lotrblog/app/models"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Badger sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
)

// Filterable post columns.
const (
	columnID       = "id"
	columnTitle    = "title"
	columnContents = "contents"
)

// now is replaced in tests.
var now = func() time.Time {
	return time.Now().UTC()
}

func postKey(id int64) []byte {
	return []byte(PostKeyPrefix + strconv.FormatInt(id, 10))
}

func commentKey(id int64) []byte {
	return []byte(CommentKeyPrefix + strconv.FormatInt(id, 10))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// postFilterMatcher turns a filter into a predicate. An id filter that is
// not a number matches nothing, like an SQL comparison against a number.
func postFilterMatcher(filter models.PostFilter) (func(models.Post) bool, error) {
	matchNone := false
	checks := make([]func(models.Post) bool, 0, len(filter))
	for column, value := range filter {
		value := value
		switch column {
		case columnID:
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				matchNone = true
				continue
			}
			checks = append(checks, func(p models.Post) bool { return p.ID == id })
		case columnTitle:
			checks = append(checks, func(p models.Post) bool { return p.Title == value })
		case columnContents:
			checks = append(checks, func(p models.Post) bool { return p.Contents == value })
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, column)
		}
	}

	return func(p models.Post) bool {
		if matchNone {
			return false
		}
		for _, check := range checks {
			if !check(p) {
				return false
			}
		}
		return true
	}, nil
}
