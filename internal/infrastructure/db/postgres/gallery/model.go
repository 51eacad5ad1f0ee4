package gallery

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID      uint64
	Gallery struct {
		ID          uint64
		UUID        uuid.UUID
		Title       string
		Description *string
		CreatorID   uint64
		CreatorUUID uuid.UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Galleries []*Gallery
)
