package ports

import (
	"context"
	"io"

	"image-gallery-api/internal/infrastructure/storage"
)

// StorageBackend persists raw image bytes and resolves them back by
// opaque key. Implementations: local filesystem, S3-compatible object
// storage, in-memory (tests). Backends do not validate content types;
// contentType is metadata only.
type StorageBackend interface {
	Store(ctx context.Context, content io.Reader, contentType, originalFilename string) (storage.Reference, error)
	Retrieve(ctx context.Context, key storage.Key) (io.ReadCloser, error)
	Delete(ctx context.Context, key storage.Key) (bool, error)
}
