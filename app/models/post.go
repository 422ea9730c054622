package models

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a request body is missing a required field.
var ErrValidation = errors.New("validation failed")

// Validate checks that both title and contents are present.
func (in PostInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Apply copies the input fields onto the post, leaving store-owned fields alone.
func (in PostInput) Apply(post *Post) {
	post.Title = in.Title
	post.Contents = in.Contents
}
