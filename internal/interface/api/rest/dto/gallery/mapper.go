package gallery

import (
	"fmt"

	"image-gallery-api/internal/domain/gallery"
)

func ToResponseGallery(baseURL string, d gallery.Gallery) Gallery {
	href := fmt.Sprintf("%s/api/v1/galleries/%s", baseURL, d.UUID)

	return Gallery{
		UUID:        d.UUID,
		Title:       d.Title,
		Description: d.Description,
		Creator:     d.Creator,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Href:        href,
		ImagesHref:  href + "/images",
	}
}

func ToResponseGalleries(baseURL string, ds gallery.Galleries) Galleries {
	out := make(Galleries, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseGallery(baseURL, *d)
	}

	return out
}

func ToDomainGallery(req Request) *gallery.Gallery {
	return &gallery.Gallery{
		Title:       req.Title,
		Description: req.Description,
	}
}
