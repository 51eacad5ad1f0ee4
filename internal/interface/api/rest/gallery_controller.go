package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/application/services"
	"image-gallery-api/internal/infrastructure/jwt"
	"image-gallery-api/internal/interface/api/rest/dto/gallery"
	imageDTO "image-gallery-api/internal/interface/api/rest/dto/image"
	"image-gallery-api/internal/interface/api/rest/middleware"
	"image-gallery-api/internal/interface/api/rest/validator"
)

type GalleryController struct {
	galleryService ports.GalleryService
	imageService   ports.ImageService
	logger         *zap.Logger
	baseURL        string
}

func NewGalleryController(
	r *gin.Engine,
	galleryService ports.GalleryService,
	imageService ports.ImageService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	baseURL string,
) *GalleryController {
	gc := &GalleryController{
		galleryService: galleryService,
		imageService:   imageService,
		logger:         logger,
		baseURL:        baseURL,
	}

	r.GET(RouteGalleries, gc.GetGalleriesHandler)
	r.GET(RouteGallery, gc.GetGalleryHandler)
	r.POST(RouteGalleries, middleware.AuthMiddleware(jwtService), gc.CreateGalleryHandler)
	r.GET(RouteGalleryImages, gc.GetGalleryImagesHandler)

	return gc
}

func (gc *GalleryController) GetGalleriesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	galleries, err := gc.galleryService.FindGalleries(c.Request.Context(), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get galleries"},
		)
		gc.logger.Error("FindGalleries() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gallery.ResponseData{
		Data: gallery.ToResponseGalleries(gc.baseURL, galleries),
	})
}

func (gc *GalleryController) GetGalleryHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("gallery_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "gallery_id must be a valid UUID"},
		)
		return
	}

	g, err := gc.galleryService.FindGalleryByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a gallery"},
		)
		gc.logger.Error("FindGalleryByID() error", zap.Error(err))
		return
	}

	if g == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "gallery not found"},
		)
		return
	}

	c.JSON(http.StatusOK, gallery.ToResponseGallery(gc.baseURL, *g))
}

func (gc *GalleryController) CreateGalleryHandler(c *gin.Context) {
	ok, creator := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token subject"},
		)
		return
	}

	var req gallery.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateGallery(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	g, err := gc.galleryService.CreateGallery(c.Request.Context(), creator, gallery.ToDomainGallery(req))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a gallery"},
		)
		gc.logger.Error("CreateGallery() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, gallery.ToResponseGallery(gc.baseURL, *g))
}

func (gc *GalleryController) GetGalleryImagesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}
	ok, uuid := validator.IsUUID(c.Param("gallery_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "gallery_id must be a valid UUID"},
		)
		return
	}

	images, err := gc.imageService.FindGalleryImages(c.Request.Context(), uuid, page)
	if err != nil {
		if errors.Is(err, services.ErrGalleryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gallery not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get images"},
		)
		gc.logger.Error("FindGalleryImages() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, imageDTO.ResponseData{
		Data: imageDTO.ToResponseImages(gc.baseURL, images),
	})
}
