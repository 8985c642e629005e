package errors

import "errors"

var (
	ErrNotFound = errors.New("article not found")

	ErrInvalidID = errors.New("invalid article ID format")
)
