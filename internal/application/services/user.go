package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"image-gallery-api/internal/application/ports"
	domain "image-gallery-api/internal/domain/user"
	userDB "image-gallery-api/internal/infrastructure/db/postgres/user"
)

type UserService struct {
	userRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetOrCreate resolves an external identity to a local user. A hit
// only refreshes connected_at; the stored display name is the user's
// and later token exchanges do not overwrite it.
func (us *UserService) GetOrCreate(ctx context.Context, oauthKey, displayName string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByOauthKey(ctx, oauthKey)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return us.userRepository.TouchConnected(ctx, u.UUID)
	}

	u, err = us.userRepository.CreateUser(ctx, domain.User{
		OauthKey:    oauthKey,
		DisplayName: displayName,
	})
	if err != nil {
		// two first logins raced; the other writer won, take its row
		if errors.Is(err, userDB.ErrOauthKeyAlreadyExists) {
			return us.userRepository.FetchUserByOauthKey(ctx, oauthKey)
		}
		return nil, err
	}

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return u, nil
}

func (us *UserService) UpdateDisplayName(ctx context.Context, uuid domain.UUID, displayName string) (*domain.User, error) {
	u, err := us.userRepository.UpdateDisplayName(ctx, uuid, displayName)
	if err != nil {
		return nil, err
	}

	return u, nil
}
