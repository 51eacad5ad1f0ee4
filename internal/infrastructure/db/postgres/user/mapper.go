package user

import (
	domain "image-gallery-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:        model.UUID,
		OauthKey:    model.OauthKey,
		DisplayName: model.DisplayName,
		ConnectedAt: model.ConnectedAt,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
