package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/image"
	"image-gallery-api/internal/domain/user"
)

// UploadRequest carries one inbound upload. Content must be fully
// consumed by a successful Store; a failed Store leaves no record
// referencing partially written bytes.
type UploadRequest struct {
	Content     io.Reader
	ContentType string
	FileName    string
	Title       *string
	Description *string
	Gallery     *uuid.UUID
}

type ImageService interface {
	Store(ctx context.Context, contributor user.UUID, req UploadRequest) (*image.Image, error)
	Retrieve(ctx context.Context, img *image.Image) (io.ReadCloser, error)
	FindImageByID(ctx context.Context, imageUUID uuid.UUID) (*image.Image, error)
	UpdateImageInfo(ctx context.Context, contributor user.UUID, imageUUID uuid.UUID, title, description *string) (*image.Image, error)
	DeleteImage(ctx context.Context, contributor user.UUID, imageUUID uuid.UUID) error
	SearchImages(ctx context.Context, contributor *user.UUID, fragment string, page int) (image.Images, error)
	FindGalleryImages(ctx context.Context, galleryUUID uuid.UUID, page int) (image.Images, error)
	FindContributorImages(ctx context.Context, contributor user.UUID, page int) (image.Images, error)
}
