package domain

import "errors"

// Store-level sentinels. Every backend translates its own driver errors
// into these so use cases never import a driver package.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
