package documents

import "errors"

var (
	// ErrNotFound indicates a lookup by id missed.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the caller supplied bad input.
	ErrInvalidInput = errors.New("invalid input")
)
