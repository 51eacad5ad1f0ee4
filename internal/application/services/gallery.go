package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"image-gallery-api/internal/application/ports"
	domain "image-gallery-api/internal/domain/gallery"
	"image-gallery-api/internal/domain/user"
)

type GalleryService struct {
	galleryRepository domain.Repository
	userRepository    user.Repository
	mCounter          *prometheus.CounterVec
}

func NewGalleryService(
	galleryRepository domain.Repository,
	userRepository user.Repository,
	mCounter *prometheus.CounterVec,
) ports.GalleryService {
	return &GalleryService{
		galleryRepository: galleryRepository,
		userRepository:    userRepository,
		mCounter:          mCounter,
	}
}

func (gs *GalleryService) FindGalleryByID(ctx context.Context, galleryUUID uuid.UUID) (*domain.Gallery, error) {
	g, err := gs.galleryRepository.FetchGalleryByID(ctx, galleryUUID)
	if err != nil {
		return nil, err
	}

	return g, nil
}

func (gs *GalleryService) FindGalleries(ctx context.Context, page int) (domain.Galleries, error) {
	galleries, err := gs.galleryRepository.FetchGalleries(ctx, page)
	if err != nil {
		return nil, err
	}

	return galleries, nil
}

func (gs *GalleryService) CreateGallery(ctx context.Context, creator user.UUID, req *domain.Gallery) (*domain.Gallery, error) {
	creatorID, err := gs.userRepository.FetchInternalID(ctx, creator)
	if err != nil {
		return nil, err
	}

	g, err := gs.galleryRepository.CreateGallery(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	gs.mCounter.WithLabelValues("gallery_created_total").Inc()

	return g, nil
}
