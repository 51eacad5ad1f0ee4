package gallery

import (
	"time"

	"github.com/google/uuid"
)

type (
	Request struct {
		Title       string  `json:"title"`
		Description *string `json:"description,omitempty"`
	}
	Gallery struct {
		UUID        uuid.UUID `json:"uuid"`
		Title       string    `json:"title"`
		Description *string   `json:"description,omitempty"`
		Creator     uuid.UUID `json:"creator"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
		Href        string    `json:"href"`
		ImagesHref  string    `json:"images_href"`
	}
	Galleries    []Gallery
	ResponseData struct {
		Data Galleries `json:"data"`
	}
)
