package ports

import (
	"context"

	"image-gallery-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	GetOrCreate(ctx context.Context, oauthKey, displayName string) (*user.User, error)
	UpdateDisplayName(ctx context.Context, uuid user.UUID, displayName string) (*user.User, error)
}
