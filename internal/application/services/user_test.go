package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "image-gallery-api/internal/domain/user"
	userDB "image-gallery-api/internal/infrastructure/db/postgres/user"
)

func TestGetOrCreate_ExistingUserOnlyReconnects(t *testing.T) {
	var (
		existing = &domain.User{
			UUID:        uuid.New(),
			OauthKey:    "github|1234",
			DisplayName: "Jane",
			ConnectedAt: time.Now().Add(-time.Hour),
		}
		touched bool
		created bool
	)

	repo := &FakeUserRepository{
		FetchUserByOauthKeyFunc: func(ctx context.Context, oauthKey string) (*domain.User, error) {
			assert.Equal(t, "github|1234", oauthKey)
			return existing, nil
		},
		TouchConnectedFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
			touched = true
			u := *existing
			u.ConnectedAt = time.Now()
			return &u, nil
		},
		CreateUserFunc: func(ctx context.Context, req domain.User) (*domain.User, error) {
			created = true
			return nil, nil
		},
	}

	svc := NewUserService(repo, newTestCounter())

	// the display name from a later token exchange must not clobber
	// what the user set for themselves
	u, err := svc.GetOrCreate(context.Background(), "github|1234", "Janet")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.True(t, touched)
	assert.False(t, created)
	assert.Equal(t, "Jane", u.DisplayName)
}

func TestGetOrCreate_NewUser(t *testing.T) {
	repo := &FakeUserRepository{
		FetchUserByOauthKeyFunc: func(ctx context.Context, oauthKey string) (*domain.User, error) {
			return nil, nil
		},
		CreateUserFunc: func(ctx context.Context, req domain.User) (*domain.User, error) {
			assert.Equal(t, "github|1234", req.OauthKey)
			assert.Equal(t, "Jane", req.DisplayName)

			u := req
			u.UUID = uuid.New()
			u.ConnectedAt = time.Now()
			return &u, nil
		},
	}

	svc := NewUserService(repo, newTestCounter())

	u, err := svc.GetOrCreate(context.Background(), "github|1234", "Jane")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Jane", u.DisplayName)
}

func TestGetOrCreate_LostInsertRaceRefetches(t *testing.T) {
	var (
		winner = &domain.User{UUID: uuid.New(), OauthKey: "github|1234", DisplayName: "Jane"}
		calls  int
	)

	repo := &FakeUserRepository{
		FetchUserByOauthKeyFunc: func(ctx context.Context, oauthKey string) (*domain.User, error) {
			calls++
			if calls == 1 {
				return nil, nil
			}
			return winner, nil
		},
		CreateUserFunc: func(ctx context.Context, req domain.User) (*domain.User, error) {
			return nil, userDB.ErrOauthKeyAlreadyExists
		},
	}

	svc := NewUserService(repo, newTestCounter())

	u, err := svc.GetOrCreate(context.Background(), "github|1234", "Jane")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, winner.UUID, u.UUID)
	assert.Equal(t, 2, calls)
}
