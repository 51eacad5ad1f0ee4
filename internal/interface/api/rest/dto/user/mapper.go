package user

import (
	"fmt"

	"image-gallery-api/internal/domain/user"
)

func ToResponseUser(baseURL string, d user.User) User {
	return User{
		UUID:        d.UUID,
		Name:        d.DisplayName,
		ConnectedAt: d.ConnectedAt,
		CreatedAt:   d.CreatedAt,
		Href:        fmt.Sprintf("%s/api/v1/users/%s", baseURL, d.UUID),
	}
}

func ToResponseUsers(baseURL string, ds user.Users) Users {
	out := make(Users, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseUser(baseURL, *d)
	}

	return out
}
