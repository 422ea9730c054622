package models

import "fmt"

// Validate checks that the comment text is present.
func (in CommentInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// NewComment builds the record for a comment on postID.
func (in CommentInput) NewComment(postID int64) Comment {
	return Comment{
		Text:   in.Text,
		PostID: postID,
	}
}
