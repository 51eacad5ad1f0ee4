package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	UUID = uuid.UUID
	// User is a gallery contributor. OauthKey is the opaque subject
	// identifier issued by the external identity provider; the service
	// never inspects its structure.
	User struct {
		UUID        UUID
		OauthKey    string
		DisplayName string
		ConnectedAt time.Time

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
