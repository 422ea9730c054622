package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested post or comment is absent.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownFilter is returned by Find for a filter key that is not a
	// post column.
	ErrUnknownFilter = errors.New("unknown filter column")

	// ErrUnknownDriver is returned by Open for an unsupported storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
