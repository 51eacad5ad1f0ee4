package storage

import "errors"

// Key is an opaque reference produced by a backend. It is meaningful
// only to the backend that issued it; callers must never parse or
// construct one themselves.
type Key string

// Reference is the result of a successful store operation: the
// sanitized original filename paired with the backend's opaque key.
type Reference struct {
	FileName string
	Key      Key
}

var (
	ErrForbiddenMimeType = errors.New("forbidden mime type")
	ErrNotFound          = errors.New("object not found")
	ErrInvalidReference  = errors.New("reference escapes storage root")
	ErrDeleteUnsupported = errors.New("delete not supported by backend")
)
