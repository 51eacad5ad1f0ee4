package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/infrastructure/jwt"
	imageDTO "image-gallery-api/internal/interface/api/rest/dto/image"
	"image-gallery-api/internal/interface/api/rest/dto/user"
	"image-gallery-api/internal/interface/api/rest/middleware"
	"image-gallery-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService  ports.UserService
	imageService ports.ImageService
	logger       *zap.Logger
	baseURL      string
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	imageService ports.ImageService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	baseURL string,
) *UserController {
	uc := &UserController{
		userService:  userService,
		imageService: imageService,
		logger:       logger,
		baseURL:      baseURL,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUserMe, middleware.AuthMiddleware(jwtService), uc.GetMeHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.GET(RouteUserImages, uc.GetUserImagesHandler)
	r.PUT(RouteUserName, middleware.AuthMiddleware(jwtService), uc.UpdateDisplayNameHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.FindUsers(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("FindUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(uc.baseURL, users),
	})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(uc.baseURL, *u))
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token subject"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(uc.baseURL, *u))
}

func (uc *UserController) UpdateDisplayNameHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	// users rename themselves, nobody else
	if c.GetString(middleware.CtxUserID) != uuid.String() {
		c.JSON(
			http.StatusForbidden,
			gin.H{"error": "cannot rename another user"},
		)
		return
	}

	var req user.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateDisplayName(req.Name); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.UpdateDisplayName(c.Request.Context(), uuid, req.Name)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update display name"},
		)
		uc.logger.Error("UpdateDisplayName() error", zap.Error(err))
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(uc.baseURL, *u))
}

func (uc *UserController) GetUserImagesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	images, err := uc.imageService.FindContributorImages(c.Request.Context(), uuid, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get images"},
		)
		uc.logger.Error("FindContributorImages() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, imageDTO.ResponseData{
		Data: imageDTO.ToResponseImages(uc.baseURL, images),
	})
}
