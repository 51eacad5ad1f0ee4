package gallery

import (
	domain "image-gallery-api/internal/domain/gallery"
)

func fromDBModel(model *Gallery) *domain.Gallery {
	var g = &domain.Gallery{
		UUID:        model.UUID,
		Title:       model.Title,
		Description: model.Description,
		Creator:     model.CreatorUUID,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return g
}

func fromDBModels(models *Galleries) domain.Galleries {
	gs := make(domain.Galleries, len(*models))
	for idx, g := range *models {
		gs[idx] = fromDBModel(g)
	}

	return gs
}
