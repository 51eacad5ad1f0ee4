package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"image-gallery-api/config"
	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/domain/gallery"
	domain "image-gallery-api/internal/domain/image"
	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/mq"
	"image-gallery-api/internal/infrastructure/storage"
)

type FakeImageRepository struct {
	FetchImageByIDFunc               func(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	FetchImageByIDAndContributorFunc func(ctx context.Context, id uuid.UUID, contributorID user.ID) (*domain.Image, error)
	CreateImageFunc                  func(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error)
	UpdateImageInfoFunc              func(ctx context.Context, req *domain.Image) (*domain.Image, error)
	DeleteImageFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	SearchImagesFunc                 func(ctx context.Context, contributorID *user.ID, fragment string, page int) (domain.Images, error)
	FetchGalleryImagesFunc           func(ctx context.Context, galleryID gallery.ID, page int) (domain.Images, error)
	FetchContributorImagesFunc       func(ctx context.Context, contributorID user.ID, page int) (domain.Images, error)
}

func (f *FakeImageRepository) FetchImageByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	if f.FetchImageByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchImageByIDFunc(ctx, id)
}
func (f *FakeImageRepository) FetchImageByIDAndContributor(ctx context.Context, id uuid.UUID, contributorID user.ID) (*domain.Image, error) {
	if f.FetchImageByIDAndContributorFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchImageByIDAndContributorFunc(ctx, id, contributorID)
}
func (f *FakeImageRepository) CreateImage(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error) {
	if f.CreateImageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateImageFunc(ctx, contributorID, galleryID, req)
}
func (f *FakeImageRepository) UpdateImageInfo(ctx context.Context, req *domain.Image) (*domain.Image, error) {
	if f.UpdateImageInfoFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateImageInfoFunc(ctx, req)
}
func (f *FakeImageRepository) DeleteImage(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	if f.DeleteImageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteImageFunc(ctx, id)
}
func (f *FakeImageRepository) SearchImages(ctx context.Context, contributorID *user.ID, fragment string, page int) (domain.Images, error) {
	if f.SearchImagesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SearchImagesFunc(ctx, contributorID, fragment, page)
}
func (f *FakeImageRepository) FetchGalleryImages(ctx context.Context, galleryID gallery.ID, page int) (domain.Images, error) {
	if f.FetchGalleryImagesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchGalleryImagesFunc(ctx, galleryID, page)
}
func (f *FakeImageRepository) FetchContributorImages(ctx context.Context, contributorID user.ID, page int) (domain.Images, error) {
	if f.FetchContributorImagesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchContributorImagesFunc(ctx, contributorID, page)
}

type FakeUserRepository struct {
	FetchUserByIDFunc       func(ctx context.Context, id user.UUID) (*user.User, error)
	FetchUserByOauthKeyFunc func(ctx context.Context, oauthKey string) (*user.User, error)
	FetchUsersFunc          func(ctx context.Context, page int) (user.Users, error)
	CreateUserFunc          func(ctx context.Context, req user.User) (*user.User, error)
	UpdateDisplayNameFunc   func(ctx context.Context, id user.UUID, displayName string) (*user.User, error)
	TouchConnectedFunc      func(ctx context.Context, id user.UUID) (*user.User, error)
	FetchInternalIDFunc     func(ctx context.Context, id user.UUID) (user.ID, error)
}

func (f *FakeUserRepository) FetchUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByIDFunc(ctx, id)
}
func (f *FakeUserRepository) FetchUserByOauthKey(ctx context.Context, oauthKey string) (*user.User, error) {
	if f.FetchUserByOauthKeyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByOauthKeyFunc(ctx, oauthKey)
}
func (f *FakeUserRepository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	if f.FetchUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUsersFunc(ctx, page)
}
func (f *FakeUserRepository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, req)
}
func (f *FakeUserRepository) UpdateDisplayName(ctx context.Context, id user.UUID, displayName string) (*user.User, error) {
	if f.UpdateDisplayNameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateDisplayNameFunc(ctx, id, displayName)
}
func (f *FakeUserRepository) TouchConnected(ctx context.Context, id user.UUID) (*user.User, error) {
	if f.TouchConnectedFunc == nil {
		return nil, errors.New("not used")
	}
	return f.TouchConnectedFunc(ctx, id)
}
func (f *FakeUserRepository) FetchInternalID(ctx context.Context, id user.UUID) (user.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FetchInternalIDFunc(ctx, id)
}

type FakeGalleryRepository struct {
	FetchGalleryByIDAndCreatorFunc func(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error)
	FetchInternalIDFunc            func(ctx context.Context, id uuid.UUID) (gallery.ID, error)
}

func (f *FakeGalleryRepository) FetchGalleryByID(ctx context.Context, id uuid.UUID) (*gallery.Gallery, error) {
	return nil, errors.New("not used")
}
func (f *FakeGalleryRepository) FetchGalleryByIDAndCreator(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error) {
	if f.FetchGalleryByIDAndCreatorFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchGalleryByIDAndCreatorFunc(ctx, id, creatorID)
}
func (f *FakeGalleryRepository) FetchGalleries(ctx context.Context, page int) (gallery.Galleries, error) {
	return nil, errors.New("not used")
}
func (f *FakeGalleryRepository) CreateGallery(ctx context.Context, creatorID user.ID, req *gallery.Gallery) (*gallery.Gallery, error) {
	return nil, errors.New("not used")
}
func (f *FakeGalleryRepository) FetchInternalID(ctx context.Context, id uuid.UUID) (gallery.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FetchInternalIDFunc(ctx, id)
}

type FakeRabbitMQ struct {
	in chan mq.Event
}

func NewFakeRabbitMQ() *FakeRabbitMQ {
	return &FakeRabbitMQ{in: make(chan mq.Event, 16)}
}

func (f *FakeRabbitMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeRabbitMQ) Init() error                                   { return nil }
func (f *FakeRabbitMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection                  { return nil }

func errNoRowsWrapped() error {
	return fmt.Errorf("not found: %w", pgx.ErrNoRows)
}

func newTestBackend(t *testing.T) *storage.Memory {
	t.Helper()

	gen, err := storage.NewGenerator(config.Upload{
		FilenameFormat:  "%s-%d%s",
		UnknownFilename: "untitled",
		RandomizerLimit: 1_000_000,
		TimestampFormat: "20060102150405.000",
		TimestampTZ:     "UTC",
	})
	require.NoError(t, err)

	return storage.NewMemory(gen, false)
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "galleryapi_events_total"}, []string{"event"})
}

func newImageService(
	backend ports.StorageBackend,
	imageRepo *FakeImageRepository,
	userRepo *FakeUserRepository,
	galleryRepo *FakeGalleryRepository,
	rabbit *FakeRabbitMQ,
) ports.ImageService {
	return NewImageService(
		zap.NewNop(),
		backend,
		storage.NewWhitelist([]string{"image/png", "image/jpeg", "image/gif"}),
		imageRepo,
		userRepo,
		galleryRepo,
		rabbit,
		newTestCounter(),
		"http://localhost:8080",
	)
}

func TestStore_RoundTrip(t *testing.T) {
	var (
		backend = newTestBackend(t)
		rabbit  = NewFakeRabbitMQ()
		ctr     = uuid.New()
		content = "not really a png"
		created *domain.Image
	)

	imageRepo := &FakeImageRepository{
		CreateImageFunc: func(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error) {
			assert.Equal(t, user.ID(3), contributorID)
			assert.Nil(t, galleryID)

			created = &domain.Image{
				UUID:        uuid.New(),
				Name:        req.Name,
				ContentType: req.ContentType,
				StorageKey:  req.StorageKey,
				Contributor: ctr,
				CreatedAt:   time.Now(),
			}
			return created, nil
		},
	}
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) {
			return 3, nil
		},
	}

	svc := newImageService(backend, imageRepo, userRepo, &FakeGalleryRepository{}, rabbit)

	img, err := svc.Store(context.Background(), ctr, ports.UploadRequest{
		Content:     strings.NewReader(content),
		ContentType: "image/png",
		FileName:    "photo.PNG",
	})
	require.NoError(t, err)
	require.NotNil(t, img)

	assert.Equal(t, "photo.PNG", img.Name)
	assert.Equal(t, "image/png", img.ContentType)
	assert.NotEmpty(t, img.StorageKey)

	rc, err := svc.Retrieve(context.Background(), img)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	ev := <-rabbit.GetInputChan()
	assert.Equal(t, "POST", ev.Method)
	assert.Equal(t, created.UUID, ev.Payload.UUID)
}

func TestStore_ForbiddenContentType(t *testing.T) {
	backend := newTestBackend(t)
	svc := newImageService(backend, &FakeImageRepository{}, &FakeUserRepository{}, &FakeGalleryRepository{}, NewFakeRabbitMQ())

	_, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:     strings.NewReader("<svg/>"),
		ContentType: "image/svg+xml",
		FileName:    "evil.svg",
	})
	require.ErrorIs(t, err, storage.ErrForbiddenMimeType)

	// rejected before the backend was touched
	assert.Zero(t, backend.Len())
}

func TestStore_MissingContentTypeFallsBack(t *testing.T) {
	backend := newTestBackend(t)
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}
	imageRepo := &FakeImageRepository{
		CreateImageFunc: func(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error) {
			img := *req
			img.UUID = uuid.New()
			return &img, nil
		},
	}

	svc := NewImageService(
		zap.NewNop(),
		backend,
		storage.NewWhitelist([]string{"application/octet-stream"}),
		imageRepo,
		userRepo,
		&FakeGalleryRepository{},
		NewFakeRabbitMQ(),
		newTestCounter(),
		"http://localhost:8080",
	)

	img, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:  strings.NewReader("bytes"),
		FileName: "blob",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", img.ContentType)
}

func TestStore_PersistFailureReportsError(t *testing.T) {
	backend := newTestBackend(t)
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}
	imageRepo := &FakeImageRepository{
		CreateImageFunc: func(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error) {
			return nil, errors.New("db down")
		},
	}

	svc := newImageService(backend, imageRepo, userRepo, &FakeGalleryRepository{}, NewFakeRabbitMQ())

	_, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:     strings.NewReader("bytes"),
		ContentType: "image/png",
		FileName:    "p.png",
	})
	require.Error(t, err)

	// bytes stay orphaned in the backend, there is no compensation
	assert.Equal(t, 1, backend.Len())
}

func TestStore_UnknownGallery(t *testing.T) {
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}
	galleryRepo := &FakeGalleryRepository{
		FetchGalleryByIDAndCreatorFunc: func(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error) {
			return nil, nil
		},
	}
	backend := newTestBackend(t)

	svc := newImageService(backend, &FakeImageRepository{}, userRepo, galleryRepo, NewFakeRabbitMQ())

	unknown := uuid.New()
	_, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:     strings.NewReader("bytes"),
		ContentType: "image/png",
		FileName:    "p.png",
		Gallery:     &unknown,
	})
	require.ErrorIs(t, err, ErrGalleryNotFound)
	assert.Zero(t, backend.Len())
}

func TestStore_GalleryOwnedBySomeoneElse(t *testing.T) {
	foreign := uuid.New()
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}
	galleryRepo := &FakeGalleryRepository{
		FetchGalleryByIDAndCreatorFunc: func(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error) {
			assert.Equal(t, foreign, id)
			// the gallery exists but belongs to another creator, so the
			// creator-scoped lookup comes back empty
			assert.Equal(t, user.ID(3), creatorID)
			return nil, nil
		},
	}
	backend := newTestBackend(t)

	svc := newImageService(backend, &FakeImageRepository{}, userRepo, galleryRepo, NewFakeRabbitMQ())

	_, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:     strings.NewReader("bytes"),
		ContentType: "image/png",
		FileName:    "p.png",
		Gallery:     &foreign,
	})
	require.ErrorIs(t, err, ErrGalleryNotFound)
	assert.Zero(t, backend.Len())
}

func TestStore_IntoOwnedGallery(t *testing.T) {
	var (
		backend = newTestBackend(t)
		galUUID = uuid.New()
	)

	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}
	galleryRepo := &FakeGalleryRepository{
		FetchGalleryByIDAndCreatorFunc: func(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error) {
			assert.Equal(t, user.ID(3), creatorID)
			return &gallery.Gallery{UUID: galUUID, Title: "vacation"}, nil
		},
		FetchInternalIDFunc: func(ctx context.Context, id uuid.UUID) (gallery.ID, error) { return 7, nil },
	}
	imageRepo := &FakeImageRepository{
		CreateImageFunc: func(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *domain.Image) (*domain.Image, error) {
			require.NotNil(t, galleryID)
			assert.Equal(t, gallery.ID(7), *galleryID)

			img := *req
			img.UUID = uuid.New()
			return &img, nil
		},
	}

	svc := newImageService(backend, imageRepo, userRepo, galleryRepo, NewFakeRabbitMQ())

	img, err := svc.Store(context.Background(), uuid.New(), ports.UploadRequest{
		Content:     strings.NewReader("bytes"),
		ContentType: "image/png",
		FileName:    "p.png",
		Gallery:     &galUUID,
	})
	require.NoError(t, err)
	require.NotNil(t, img)
}

func TestDeleteImage_BackendFailureIsNotFatal(t *testing.T) {
	var (
		imgUUID = uuid.New()
		ctr     = uuid.New()
		rabbit  = NewFakeRabbitMQ()
	)

	img := &domain.Image{UUID: imgUUID, Name: "p.png", StorageKey: "gone/p.png", Contributor: ctr}
	imageRepo := &FakeImageRepository{
		FetchImageByIDAndContributorFunc: func(ctx context.Context, id uuid.UUID, contributorID user.ID) (*domain.Image, error) {
			return img, nil
		},
		DeleteImageFunc: func(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
			return img, nil
		},
	}
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}

	// append-only memory backend refuses deletes
	gen, err := storage.NewGenerator(config.Upload{
		FilenameFormat:  "%s-%d%s",
		UnknownFilename: "untitled",
		RandomizerLimit: 1_000_000,
		TimestampFormat: "20060102150405.000",
		TimestampTZ:     "UTC",
	})
	require.NoError(t, err)
	backend := storage.NewMemory(gen, true)

	svc := newImageService(backend, imageRepo, userRepo, &FakeGalleryRepository{}, rabbit)

	err = svc.DeleteImage(context.Background(), ctr, imgUUID)
	require.NoError(t, err)

	ev := <-rabbit.GetInputChan()
	assert.Equal(t, "DELETE", ev.Method)
}

func TestDeleteImage_NotOwned(t *testing.T) {
	imageRepo := &FakeImageRepository{
		FetchImageByIDAndContributorFunc: func(ctx context.Context, id uuid.UUID, contributorID user.ID) (*domain.Image, error) {
			return nil, nil
		},
	}
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) { return 3, nil },
	}

	svc := newImageService(newTestBackend(t), imageRepo, userRepo, &FakeGalleryRepository{}, NewFakeRabbitMQ())

	err := svc.DeleteImage(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrImageNotFound)
}

func TestSearchImages_ResolvesContributor(t *testing.T) {
	ctr := uuid.New()
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) {
			assert.Equal(t, ctr, id)
			return 3, nil
		},
	}
	imageRepo := &FakeImageRepository{
		SearchImagesFunc: func(ctx context.Context, contributorID *user.ID, fragment string, page int) (domain.Images, error) {
			require.NotNil(t, contributorID)
			assert.Equal(t, user.ID(3), *contributorID)
			assert.Equal(t, "sun", fragment)
			return domain.Images{{UUID: uuid.New(), Name: "sunset.jpg"}}, nil
		},
	}

	svc := newImageService(newTestBackend(t), imageRepo, userRepo, &FakeGalleryRepository{}, NewFakeRabbitMQ())

	got, err := svc.SearchImages(context.Background(), &ctr, "sun", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestSearchImages_UnknownContributorIsEmpty(t *testing.T) {
	ctr := uuid.New()
	userRepo := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, id user.UUID) (user.ID, error) {
			return 0, errNoRowsWrapped()
		},
	}

	svc := newImageService(newTestBackend(t), &FakeImageRepository{}, userRepo, &FakeGalleryRepository{}, NewFakeRabbitMQ())

	got, err := svc.SearchImages(context.Background(), &ctr, "", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
