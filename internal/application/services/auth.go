package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/domain/user"
	"image-gallery-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidClientSecret   = errors.New("invalid client secret")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

const tokenTTL = time.Hour

type AuthService struct {
	jwtService       *jwt.Service
	userService      ports.UserService
	clientSecretHash string
}

func NewAuthService(
	jwtService *jwt.Service,
	userService ports.UserService,
	clientSecretHash string,
) ports.Auth {
	return &AuthService{
		jwtService:       jwtService,
		userService:      userService,
		clientSecretHash: clientSecretHash,
	}
}

func (as *AuthService) ExchangeToken(ctx context.Context, oauthKey, displayName, clientSecret string) (string, *user.User, error) {
	err := bcrypt.CompareHashAndPassword([]byte(as.clientSecretHash), []byte(clientSecret))
	if err != nil {
		return "", nil, ErrInvalidClientSecret
	}

	u, err := as.userService.GetOrCreate(ctx, oauthKey, displayName)
	if err != nil {
		return "", nil, err
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), "user", tokenTTL)
	if err != nil {
		return "", nil, ErrFailedToGenerateToken
	}

	return token, u, nil
}
