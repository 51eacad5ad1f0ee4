package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/db/postgres"
)

// ErrOauthKeyAlreadyExists surfaces a lost insert race between two
// concurrent first logins of the same account.
var ErrOauthKeyAlreadyExists = errors.New("user with this oauth key already exists")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.ID,
			&u.UUID,
			&u.OauthKey,
			&u.DisplayName,
			&u.ConnectedAt,

			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.OauthKey,
		&u.DisplayName,
		&u.ConnectedAt,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchUserByOauthKey(ctx context.Context, oauthKey string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByOauthKey, oauthKey).Scan(
		&u.ID,
		&u.UUID,
		&u.OauthKey,
		&u.DisplayName,
		&u.ConnectedAt,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.OauthKey, req.DisplayName,
	).Scan(
		&u.ID,
		&u.UUID,
		&u.OauthKey,
		&u.DisplayName,
		&u.ConnectedAt,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrOauthKeyAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) UpdateDisplayName(ctx context.Context, uuid user.UUID, displayName string) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, UpdateDisplayNameByUUID, displayName, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.OauthKey,
		&u.DisplayName,
		&u.ConnectedAt,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) TouchConnected(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, TouchConnectedByUUID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.OauthKey,
		&u.DisplayName,
		&u.ConnectedAt,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	var id uint64
	if err := r.db.QueryRow(ctx, SelectIdByUUID, uuid.String()).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user not found by uuid %s: %w", uuid.String(), err)
		}
		return 0, err
	}

	return user.ID(id), nil
}
