package image

import (
	"time"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/storage"
)

type (
	// Image is immutable content with mutable metadata on top: the
	// storage key is set exactly once at creation and never updated;
	// title and description may change without touching the bytes.
	Image struct {
		UUID        uuid.UUID
		Name        string
		Title       *string
		Description *string
		ContentType string
		StorageKey  storage.Key
		Contributor user.UUID
		Gallery     *uuid.UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Images []*Image
)
