package repository

import "errors"

var (
	// ErrNotFound is wrapped by every store when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict means the menu was saved by someone else since it
	// was loaded.
	ErrVersionConflict = errors.New("version conflict")
)
