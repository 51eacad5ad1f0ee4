package image

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"image-gallery-api/internal/domain/gallery"
	"image-gallery-api/internal/domain/image"
	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/db/postgres"
)

// ErrStorageKeyAlreadyExists guards the single-writer invariant on
// storage keys: two records must never point at the same object.
var ErrStorageKeyAlreadyExists = errors.New("image with this storage key already exists")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) image.Repository {
	return &Repository{db: db}
}

func scanImage(row pgx.Row) (*Image, error) {
	i := new(Image)
	err := row.Scan(
		&i.ID,
		&i.UUID,
		&i.Name,
		&i.Title,
		&i.Description,
		&i.ContentType,
		&i.StorageKey,
		&i.ContributorID,
		&i.CtrUUID,
		&i.GalleryID,
		&i.GalleryUUID,

		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return i, nil
}

func (r *Repository) queryImages(ctx context.Context, query string, args ...any) (image.Images, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var is Images
	for rows.Next() {
		i, err := scanImage(rows)
		if err != nil {
			return nil, err
		}

		is = append(is, i)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&is), nil
}

func (r *Repository) FetchImageByID(ctx context.Context, id uuid.UUID) (*image.Image, error) {
	i, err := scanImage(r.db.QueryRow(ctx, SelectImageByID, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(i), nil
}

func (r *Repository) FetchImageByIDAndContributor(ctx context.Context, id uuid.UUID, contributorID user.ID) (*image.Image, error) {
	i, err := scanImage(r.db.QueryRow(ctx, SelectImageByIDAndContributor, id.String(), contributorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(i), nil
}

func (r *Repository) CreateImage(ctx context.Context, contributorID user.ID, galleryID *gallery.ID, req *image.Image) (*image.Image, error) {
	i, err := scanImage(r.db.QueryRow(
		ctx,
		InsertImage,
		req.Name, req.Title, req.Description, req.ContentType, string(req.StorageKey), contributorID, galleryID,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrStorageKeyAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(i), nil
}

func (r *Repository) UpdateImageInfo(ctx context.Context, req *image.Image) (*image.Image, error) {
	i, err := scanImage(r.db.QueryRow(ctx, UpdateImageInfoByUUID, req.Title, req.Description, req.UUID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(i), nil
}

func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) (*image.Image, error) {
	i, err := scanImage(r.db.QueryRow(ctx, DeleteImageByUUID, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(i), nil
}

func (r *Repository) SearchImages(ctx context.Context, contributorID *user.ID, fragment string, page int) (image.Images, error) {
	var ctrID *uint64
	if contributorID != nil {
		ctrID = (*uint64)(contributorID)
	}

	return r.queryImages(ctx, SearchImages, ctrID, fragment, page)
}

func (r *Repository) FetchGalleryImages(ctx context.Context, galleryID gallery.ID, page int) (image.Images, error) {
	return r.queryImages(ctx, SelectGalleryImages, galleryID, page)
}

func (r *Repository) FetchContributorImages(ctx context.Context, contributorID user.ID, page int) (image.Images, error) {
	return r.queryImages(ctx, SelectContributorImages, contributorID, page)
}
