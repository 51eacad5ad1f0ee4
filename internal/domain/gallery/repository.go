package gallery

import (
	"context"

	"github.com/google/uuid"

	"image-gallery-api/internal/domain/user"
)

type Repository interface {
	FetchGalleryByID(ctx context.Context, uuid uuid.UUID) (*Gallery, error)
	FetchGalleryByIDAndCreator(ctx context.Context, uuid uuid.UUID, creatorID user.ID) (*Gallery, error)
	FetchGalleries(ctx context.Context, page int) (Galleries, error)
	CreateGallery(ctx context.Context, creatorID user.ID, req *Gallery) (*Gallery, error)
	FetchInternalID(ctx context.Context, uuid uuid.UUID) (ID, error)
}
