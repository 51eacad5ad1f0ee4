package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	User struct {
		ID          uint64
		UUID        uuid.UUID
		OauthKey    string
		DisplayName string
		ConnectedAt time.Time

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
