package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist, or when
	// a report filter (such as the active-user constraint) excludes it.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a write violates the unique email
	// constraint.
	ErrDuplicateEmail = errors.New("email already in use")
)
