package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByOauthKey(ctx context.Context, oauthKey string) (*User, error)
	FetchUsers(ctx context.Context, page int) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateDisplayName(ctx context.Context, uuid UUID, displayName string) (*User, error)
	TouchConnected(ctx context.Context, uuid UUID) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
}
