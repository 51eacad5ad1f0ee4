package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID        uuid.UUID `json:"uuid"`
		Name        string    `json:"name"`
		ConnectedAt time.Time `json:"connected_at"`
		CreatedAt   time.Time `json:"created_at"`
		Href        string    `json:"href"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}
)
