package gallery

import (
	"time"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/user"
)

type (
	ID uint64
	// Gallery is a named collection of images owned by its creator.
	Gallery struct {
		UUID        uuid.UUID
		Title       string
		Description *string
		Creator     user.UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Galleries []*Gallery
)
