package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user row violates the unique email constraint.
	ErrDuplicateEmail = errors.New("email already exists")
)
