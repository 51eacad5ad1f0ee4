package image

import (
	"fmt"

	"image-gallery-api/internal/domain/image"
)

// Hrefs are built from an explicit base URL passed by the caller;
// entities carry no link-building state.
func ToResponseImage(baseURL string, d image.Image) Image {
	href := fmt.Sprintf("%s/api/v1/images/%s", baseURL, d.UUID)

	return Image{
		UUID:        d.UUID,
		Name:        d.Name,
		Title:       d.Title,
		Description: d.Description,
		ContentType: d.ContentType,
		Contributor: d.Contributor,
		Gallery:     d.Gallery,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Href:        href,
		ContentHref: href + "/content",
	}
}

func ToResponseImages(baseURL string, ds image.Images) Images {
	out := make(Images, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseImage(baseURL, *d)
	}

	return out
}
