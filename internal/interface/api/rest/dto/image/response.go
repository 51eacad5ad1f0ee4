package image

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Image is the outward representation. The opaque storage key is
	// deliberately absent: content is reachable only via ContentHref.
	Image struct {
		UUID        uuid.UUID  `json:"uuid"`
		Name        string     `json:"name"`
		Title       *string    `json:"title,omitempty"`
		Description *string    `json:"description,omitempty"`
		ContentType string     `json:"content_type"`
		Contributor uuid.UUID  `json:"contributor"`
		Gallery     *uuid.UUID `json:"gallery,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
		UpdatedAt   time.Time  `json:"updated_at"`
		Href        string     `json:"href"`
		ContentHref string     `json:"content_href"`
	}
	Images       []Image
	ResponseData struct {
		Data Images `json:"data"`
	}
)
