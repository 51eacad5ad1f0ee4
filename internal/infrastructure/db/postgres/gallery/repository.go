package gallery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"image-gallery-api/internal/domain/gallery"
	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) gallery.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchGalleries(ctx context.Context, page int) (gallery.Galleries, error) {
	rows, err := r.db.Query(ctx, SelectGalleries, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gs Galleries
	for rows.Next() {
		g := new(Gallery)

		if err = rows.Scan(
			&g.ID,
			&g.UUID,
			&g.Title,
			&g.Description,
			&g.CreatorID,
			&g.CreatorUUID,

			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, err
		}

		gs = append(gs, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&gs), nil
}

func (r *Repository) FetchGalleryByID(ctx context.Context, id uuid.UUID) (*gallery.Gallery, error) {
	g := new(Gallery)
	err := r.db.QueryRow(ctx, SelectGalleryByID, id.String()).Scan(
		&g.ID,
		&g.UUID,
		&g.Title,
		&g.Description,
		&g.CreatorID,
		&g.CreatorUUID,

		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(g), err
}

func (r *Repository) FetchGalleryByIDAndCreator(ctx context.Context, id uuid.UUID, creatorID user.ID) (*gallery.Gallery, error) {
	g := new(Gallery)
	err := r.db.QueryRow(ctx, SelectGalleryByIDAndCreator, id.String(), creatorID).Scan(
		&g.ID,
		&g.UUID,
		&g.Title,
		&g.Description,
		&g.CreatorID,
		&g.CreatorUUID,

		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(g), err
}

func (r *Repository) CreateGallery(ctx context.Context, creatorID user.ID, req *gallery.Gallery) (*gallery.Gallery, error) {
	g := new(Gallery)

	err := r.db.QueryRow(
		ctx,
		InsertGallery,
		req.Title, req.Description, creatorID,
	).Scan(
		&g.ID,
		&g.UUID,
		&g.Title,
		&g.Description,
		&g.CreatorID,
		&g.CreatorUUID,

		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(g), err
}

func (r *Repository) FetchInternalID(ctx context.Context, id uuid.UUID) (gallery.ID, error) {
	var internalID uint64
	if err := r.db.QueryRow(ctx, SelectIdByUUID, id.String()).Scan(&internalID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("gallery not found by uuid %s: %w", id.String(), err)
		}
		return 0, err
	}

	return gallery.ID(internalID), nil
}
