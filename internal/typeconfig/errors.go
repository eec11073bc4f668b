package typeconfig

import "errors"

// Validation errors surfaced to the caller. The core never alerts the user
// itself; the host decides how to present these.
var (
	ErrTypeExists    = errors.New("type id already exists")
	ErrTypeNotFound  = errors.New("type not found")
	ErrLastType      = errors.New("cannot remove the last remaining type")
	ErrInvalidTypeID = errors.New("type id must match ^[A-Z][A-Z0-9_]*$")
	ErrBadIndex      = errors.New("reorder index out of range")
)
