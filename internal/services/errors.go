package services

import "errors"

var (
	// ErrNotFound covers both absent records and records owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference means a foreign key did not resolve within the
	// acting user's data.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrDuplicate means a unique constraint within the user's data was hit.
	ErrDuplicate = errors.New("already exists")
)
