package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	domainImage "image-gallery-api/internal/domain/image"
	domain "image-gallery-api/internal/domain/user"
	jwtSvc "image-gallery-api/internal/infrastructure/jwt"
	"image-gallery-api/internal/interface/api/rest/dto/user"
	"image-gallery-api/internal/interface/api/rest/middleware"
)

type FakeUserService struct {
	FindUserByIDFunc      func(ctx context.Context, id domain.UUID) (*domain.User, error)
	FindUsersFunc         func(ctx context.Context, page int) (domain.Users, error)
	GetOrCreateFunc       func(ctx context.Context, oauthKey, displayName string) (*domain.User, error)
	UpdateDisplayNameFunc func(ctx context.Context, id domain.UUID, displayName string) (*domain.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.UUID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	if f.FindUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUsersFunc(ctx, page)
}
func (f *FakeUserService) GetOrCreate(ctx context.Context, oauthKey, displayName string) (*domain.User, error) {
	if f.GetOrCreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetOrCreateFunc(ctx, oauthKey, displayName)
}
func (f *FakeUserService) UpdateDisplayName(ctx context.Context, id domain.UUID, displayName string) (*domain.User, error) {
	if f.UpdateDisplayNameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UpdateDisplayNameFunc(ctx, id, displayName)
}

func someDomainUser() *domain.User {
	return &domain.User{
		UUID:        uuid.New(),
		OauthKey:    "github|1234",
		DisplayName: "Jane",
		ConnectedAt: time.Now(),
	}
}

func setupRouterUC(t *testing.T, us ports.UserService, is ports.ImageService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	secret := "test-secret"
	j := jwtSvc.New(secret)

	uc := &UserController{
		userService:  us,
		imageService: is,
		logger:       zap.NewNop(),
		baseURL:      testBaseURL,
	}

	r.GET("/users", uc.GetUsersHandler)
	r.GET("/users/me", middleware.AuthMiddleware(j), uc.GetMeHandler)
	r.GET("/users/:user_id", uc.GetUserHandler)
	r.GET("/users/:user_id/images", uc.GetUserImagesHandler)
	r.PUT("/users/:user_id/name", middleware.AuthMiddleware(j), uc.UpdateDisplayNameHandler)

	return r, secret
}

func TestUserController_GetUsersHandler(t *testing.T) {
	tests := []struct {
		name       string
		pageQuery  string
		mockUS     func() ports.UserService
		wantStatus int
		wantErr    string
	}{
		{
			name:      "500 when service fails",
			pageQuery: "1",
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUsersFunc: func(ctx context.Context, page int) (domain.Users, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "failed to get users",
		},
		{
			name:      "200 success",
			pageQuery: "2",
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUsersFunc: func(ctx context.Context, page int) (domain.Users, error) {
						return domain.Users{someDomainUser()}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterUC(t, tt.mockUS(), &FakeImageService{})
			rr := doReq(t, r, http.MethodGet, "/users?page="+tt.pageQuery, nil, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestUserController_GetUserHandler(t *testing.T) {
	okID := uuid.New()

	tests := []struct {
		name       string
		userID     string
		mockUS     func() ports.UserService
		wantStatus int
		wantErr    string
	}{
		{
			name:       "400 invalid uuid",
			userID:     "not-a-uuid",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErr:    "user_id must be a valid UUID",
		},
		{
			name:   "404 not found",
			userID: okID.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
						return nil, nil
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantErr:    "user not found",
		},
		{
			name:   "200 success",
			userID: okID.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
						u := someDomainUser()
						u.UUID = id
						return u, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouterUC(t, tt.mockUS(), &FakeImageService{})
			rr := doReq(t, r, http.MethodGet, "/users/"+tt.userID, nil, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErr != "" {
				var resp map[string]any
				_ = json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestUserController_GetMeHandler(t *testing.T) {
	me := someDomainUser()

	us := &FakeUserService{
		FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
			assert.Equal(t, me.UUID, id)
			return me, nil
		},
	}

	r, secret := setupRouterUC(t, us, &FakeImageService{})

	t.Run("401 without token", func(t *testing.T) {
		rr := doReq(t, r, http.MethodGet, "/users/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("200 resolves token subject", func(t *testing.T) {
		rr := doReq(t, r, http.MethodGet, "/users/me", nil, bearer(t, secret, me.UUID))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, me.UUID.String(), resp["uuid"])
	})
}

func TestUserController_UpdateDisplayNameHandler(t *testing.T) {
	me := someDomainUser()

	t.Run("403 renaming another user", func(t *testing.T) {
		r, secret := setupRouterUC(t, &FakeUserService{}, &FakeImageService{})
		rr := doReq(t, r, http.MethodPut, "/users/"+uuid.NewString()+"/name", user.NameRequest{Name: "Janet"}, bearer(t, secret, me.UUID))
		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("400 name too short", func(t *testing.T) {
		r, secret := setupRouterUC(t, &FakeUserService{}, &FakeImageService{})
		rr := doReq(t, r, http.MethodPut, "/users/"+me.UUID.String()+"/name", user.NameRequest{Name: "J"}, bearer(t, secret, me.UUID))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("200 success", func(t *testing.T) {
		us := &FakeUserService{
			UpdateDisplayNameFunc: func(ctx context.Context, id domain.UUID, displayName string) (*domain.User, error) {
				assert.Equal(t, me.UUID, id)
				assert.Equal(t, "Janet", displayName)

				u := *me
				u.DisplayName = displayName
				return &u, nil
			},
		}

		r, secret := setupRouterUC(t, us, &FakeImageService{})
		rr := doReq(t, r, http.MethodPut, "/users/"+me.UUID.String()+"/name", user.NameRequest{Name: "Janet"}, bearer(t, secret, me.UUID))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Janet", resp["name"])
	})
}

func TestUserController_GetUserImagesHandler(t *testing.T) {
	owner := someDomainUser()

	us := &FakeUserService{
		FindUserByIDFunc: func(ctx context.Context, id domain.UUID) (*domain.User, error) {
			if id == owner.UUID {
				return owner, nil
			}
			return nil, nil
		},
	}
	is := &FakeImageService{
		FindContributorImagesFunc: func(ctx context.Context, contributor domain.UUID, page int) (domainImage.Images, error) {
			return domainImage.Images{someDomainImage(contributor)}, nil
		},
	}

	r, _ := setupRouterUC(t, us, is)

	t.Run("404 unknown user", func(t *testing.T) {
		rr := doReq(t, r, http.MethodGet, "/users/"+uuid.NewString()+"/images", nil, nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("200 success", func(t *testing.T) {
		rr := doReq(t, r, http.MethodGet, "/users/"+owner.UUID.String()+"/images", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		data, ok := resp["data"].([]any)
		require.True(t, ok)
		assert.Len(t, data, 1)
	})
}
