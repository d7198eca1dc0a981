package models

import "errors"

// Errors shared by every storage backend.
var (
	// ErrStoreUnavailable wraps driver errors caused by an unreachable store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("record already exists")
)
