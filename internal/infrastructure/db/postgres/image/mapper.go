package image

import (
	domain "image-gallery-api/internal/domain/image"
	"image-gallery-api/internal/infrastructure/storage"
)

func fromDBModel(model *Image) *domain.Image {
	var i = &domain.Image{
		UUID:        model.UUID,
		Name:        model.Name,
		Title:       model.Title,
		Description: model.Description,
		ContentType: model.ContentType,
		StorageKey:  storage.Key(model.StorageKey),
		Contributor: model.CtrUUID,
		Gallery:     model.GalleryUUID,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return i
}

func fromDBModels(models *Images) domain.Images {
	is := make(domain.Images, len(*models))
	for idx, i := range *models {
		is[idx] = fromDBModel(i)
	}

	return is
}
