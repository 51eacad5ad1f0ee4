package ports

import (
	"context"

	"image-gallery-api/internal/domain/user"
)

type Auth interface {
	// ExchangeToken trades an external identity (opaque oauth key plus
	// display name) for a service JWT, creating the user on first
	// contact. clientSecret authenticates the calling client, not the
	// user; upstream issuer validation is out of scope.
	ExchangeToken(ctx context.Context, oauthKey, displayName, clientSecret string) (string, *user.User, error)
}
