package ports

import (
	"context"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/gallery"
	"image-gallery-api/internal/domain/user"
)

type GalleryService interface {
	FindGalleryByID(ctx context.Context, galleryUUID uuid.UUID) (*gallery.Gallery, error)
	FindGalleries(ctx context.Context, page int) (gallery.Galleries, error)
	CreateGallery(ctx context.Context, creator user.UUID, req *gallery.Gallery) (*gallery.Gallery, error)
}
