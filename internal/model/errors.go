package model

import "errors"

var (
	// ErrValidation marks input rejected before it reaches the database.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a failure of the underlying database file.
	ErrStorage = errors.New("storage failure")
	// ErrNotFound is only returned by lookups; mutations on unknown ids are no-ops.
	ErrNotFound = errors.New("not found")
)
