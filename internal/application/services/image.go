package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/domain/gallery"
	domain "image-gallery-api/internal/domain/image"
	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/mq"
	"image-gallery-api/internal/infrastructure/storage"
	imageDTO "image-gallery-api/internal/interface/api/rest/dto/image"
)

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrGalleryNotFound = errors.New("gallery not found")
)

const fallbackContentType = "application/octet-stream"

type ImageService struct {
	log               *zap.Logger
	backend           ports.StorageBackend
	whitelist         storage.Whitelist
	imageRepository   domain.Repository
	userRepository    user.Repository
	galleryRepository gallery.Repository
	mq                ports.RabbitMQ
	mCounter          *prometheus.CounterVec
	baseURL           string
}

func NewImageService(
	log *zap.Logger,
	backend ports.StorageBackend,
	whitelist storage.Whitelist,
	imageRepository domain.Repository,
	userRepository user.Repository,
	galleryRepository gallery.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	baseURL string,
) ports.ImageService {
	return &ImageService{
		log:               log,
		backend:           backend,
		whitelist:         whitelist,
		imageRepository:   imageRepository,
		userRepository:    userRepository,
		galleryRepository: galleryRepository,
		mq:                mq,
		mCounter:          mCounter,
		baseURL:           baseURL,
	}
}

// Store validates the upload, writes the bytes through the storage
// backend and only then records the metadata. The content type is
// checked before anything touches the backend so a forbidden upload
// leaves no bytes behind.
func (is *ImageService) Store(ctx context.Context, contributor user.UUID, req ports.UploadRequest) (*domain.Image, error) {
	contentType := req.ContentType
	if contentType == "" {
		contentType = fallbackContentType
	}
	if err := is.whitelist.Allow(contentType); err != nil {
		return nil, err
	}

	contributorID, err := is.userRepository.FetchInternalID(ctx, contributor)
	if err != nil {
		return nil, err
	}

	var galleryID *gallery.ID
	if req.Gallery != nil {
		// only the gallery's creator may add images to it; a gallery
		// owned by someone else looks the same as a missing one
		g, err := is.galleryRepository.FetchGalleryByIDAndCreator(ctx, *req.Gallery, contributorID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrGalleryNotFound
		}

		id, err := is.galleryRepository.FetchInternalID(ctx, *req.Gallery)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrGalleryNotFound
			}
			return nil, err
		}
		galleryID = &id
	}

	ref, err := is.backend.Store(ctx, req.Content, contentType, req.FileName)
	if err != nil {
		return nil, err
	}

	img, err := is.imageRepository.CreateImage(ctx, contributorID, galleryID, &domain.Image{
		Name:        ref.FileName,
		Title:       req.Title,
		Description: req.Description,
		ContentType: contentType,
		StorageKey:  ref.Key,
	})
	if err != nil {
		// the bytes are already down; without the record nothing can
		// reach them, so log the orphaned key for offline cleanup
		is.log.Error("image record not persisted, bytes orphaned",
			zap.String("storage_key", string(ref.Key)), zap.Error(err))
		return nil, err
	}

	is.publish(http.MethodPost, img)
	is.mCounter.WithLabelValues("image_uploaded_total").Inc()

	return img, nil
}

func (is *ImageService) Retrieve(ctx context.Context, img *domain.Image) (io.ReadCloser, error) {
	return is.backend.Retrieve(ctx, img.StorageKey)
}

func (is *ImageService) FindImageByID(ctx context.Context, imageUUID uuid.UUID) (*domain.Image, error) {
	img, err := is.imageRepository.FetchImageByID(ctx, imageUUID)
	if err != nil {
		return nil, err
	}

	return img, nil
}

func (is *ImageService) UpdateImageInfo(ctx context.Context, contributor user.UUID, imageUUID uuid.UUID, title, description *string) (*domain.Image, error) {
	contributorID, err := is.userRepository.FetchInternalID(ctx, contributor)
	if err != nil {
		return nil, err
	}

	img, err := is.imageRepository.FetchImageByIDAndContributor(ctx, imageUUID, contributorID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}

	if title != nil {
		img.Title = title
	}
	if description != nil {
		img.Description = description
	}

	img, err = is.imageRepository.UpdateImageInfo(ctx, img)
	if err != nil {
		return nil, err
	}

	if img != nil {
		is.publish(http.MethodPut, img)
	}

	is.mCounter.WithLabelValues("image_updated_total").Inc()

	return img, nil
}

// DeleteImage drops the metadata record first; that is the
// authoritative delete. Removing the bytes afterwards is best effort
// and a failure there only gets logged.
func (is *ImageService) DeleteImage(ctx context.Context, contributor user.UUID, imageUUID uuid.UUID) error {
	contributorID, err := is.userRepository.FetchInternalID(ctx, contributor)
	if err != nil {
		return err
	}

	img, err := is.imageRepository.FetchImageByIDAndContributor(ctx, imageUUID, contributorID)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}

	img, err = is.imageRepository.DeleteImage(ctx, imageUUID)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}

	if _, err = is.backend.Delete(ctx, img.StorageKey); err != nil {
		is.log.Warn("image bytes not removed",
			zap.String("storage_key", string(img.StorageKey)), zap.Error(err))
	}

	is.publish(http.MethodDelete, img)
	is.mCounter.WithLabelValues("image_deleted_total").Inc()

	return nil
}

func (is *ImageService) SearchImages(ctx context.Context, contributor *user.UUID, fragment string, page int) (domain.Images, error) {
	var contributorID *user.ID
	if contributor != nil {
		id, err := is.userRepository.FetchInternalID(ctx, *contributor)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Images{}, nil
			}
			return nil, err
		}
		contributorID = &id
	}

	images, err := is.imageRepository.SearchImages(ctx, contributorID, fragment, page)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (is *ImageService) FindGalleryImages(ctx context.Context, galleryUUID uuid.UUID, page int) (domain.Images, error) {
	galleryID, err := is.galleryRepository.FetchInternalID(ctx, galleryUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGalleryNotFound
		}
		return nil, err
	}

	images, err := is.imageRepository.FetchGalleryImages(ctx, galleryID, page)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (is *ImageService) FindContributorImages(ctx context.Context, contributor user.UUID, page int) (domain.Images, error) {
	contributorID, err := is.userRepository.FetchInternalID(ctx, contributor)
	if err != nil {
		return nil, err
	}

	images, err := is.imageRepository.FetchContributorImages(ctx, contributorID, page)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (is *ImageService) publish(method string, img *domain.Image) {
	is.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Method:  method,
		UserID:  img.Contributor.String(),
		Payload: imageDTO.ToResponseImage(is.baseURL, *img),
	}
}
