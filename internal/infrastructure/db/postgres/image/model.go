package image

import (
	"time"

	"github.com/google/uuid"
)

type (
	Image struct {
		ID            uint64
		UUID          uuid.UUID
		Name          string
		Title         *string
		Description   *string
		ContentType   string
		StorageKey    string
		ContributorID uint64
		CtrUUID       uuid.UUID
		GalleryID     *uint64
		GalleryUUID   *uuid.UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Images []*Image
)
