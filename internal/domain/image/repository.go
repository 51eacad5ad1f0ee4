package image

import (
	"context"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/gallery"
	"image-gallery-api/internal/domain/user"
)

type Repository interface {
	FetchImageByID(ctx context.Context, uuid uuid.UUID) (*Image, error)
	FetchImageByIDAndContributor(ctx context.Context, uuid uuid.UUID, contributorID user.ID) (*Image, error)
	CreateImage(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *Image) (*Image, error)
	UpdateImageInfo(ctx context.Context, req *Image) (*Image, error)
	DeleteImage(ctx context.Context, uuid uuid.UUID) (*Image, error)
	// SearchImages filters by contributor and/or case-insensitive
	// fragment match on name, title and description; results ordered by
	// COALESCE(title, name) ascending, then creation time descending.
	SearchImages(ctx context.Context, contributorID *user.ID, fragment string, page int) (Images, error)
	FetchGalleryImages(ctx context.Context, galleryID gallery.ID, page int) (Images, error)
	FetchContributorImages(ctx context.Context, contributorID user.ID, page int) (Images, error)
}
