package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"image-gallery-api/internal/application/ports"
	"image-gallery-api/internal/application/services"
	"image-gallery-api/internal/infrastructure/jwt"
	"image-gallery-api/internal/infrastructure/storage"
	"image-gallery-api/internal/interface/api/rest/dto/image"
	"image-gallery-api/internal/interface/api/rest/middleware"
	"image-gallery-api/internal/interface/api/rest/validator"
)

// 10MB
const maxSize = int64(10 << 20)

type ImageController struct {
	imageService ports.ImageService
	logger       *zap.Logger
	baseURL      string
}

func NewImageController(
	r *gin.Engine,
	imageService ports.ImageService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	baseURL string,
) *ImageController {
	ic := &ImageController{
		imageService: imageService,
		logger:       logger,
		baseURL:      baseURL,
	}

	r.GET(RouteImages, ic.SearchImagesHandler)
	r.GET(RouteImage, ic.GetImageHandler)
	r.GET(RouteImageContent, ic.GetImageContentHandler)
	r.POST(RouteImages, middleware.AuthMiddleware(jwtService), ic.CreateImageHandler)
	r.POST(RouteGalleryImages, middleware.AuthMiddleware(jwtService), ic.CreateGalleryImageHandler)
	r.PUT(RouteImageDescription, middleware.AuthMiddleware(jwtService), ic.UpdateImageInfoHandler)
	r.DELETE(RouteImage, middleware.AuthMiddleware(jwtService), ic.DeleteImageHandler)

	return ic
}

func (ic *ImageController) SearchImagesHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	var contributor *uuid.UUID
	if s := c.Query("contributor"); s != "" {
		ok, id := validator.IsUUID(s)
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "contributor must be a valid UUID"},
			)
			return
		}
		contributor = &id
	}

	images, err := ic.imageService.SearchImages(c.Request.Context(), contributor, c.Query("q"), page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to search images"},
		)
		ic.logger.Error("SearchImages() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, image.ResponseData{
		Data: image.ToResponseImages(ic.baseURL, images),
	})
}

func (ic *ImageController) GetImageHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("image_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "image_id must be a valid UUID"},
		)
		return
	}

	img, err := ic.imageService.FindImageByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get an image"},
		)
		ic.logger.Error("FindImageByID() error", zap.Error(err))
		return
	}

	if img == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "image not found"},
		)
		return
	}

	c.JSON(http.StatusOK, image.ToResponseImage(ic.baseURL, *img))
}

// GetImageContentHandler streams the raw bytes back. The recorded
// content type and display name ride along; the storage key never
// leaves the server.
func (ic *ImageController) GetImageContentHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("image_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "image_id must be a valid UUID"},
		)
		return
	}

	img, err := ic.imageService.FindImageByID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get an image"},
		)
		ic.logger.Error("FindImageByID() error", zap.Error(err))
		return
	}
	if img == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "image not found"},
		)
		return
	}

	rc, err := ic.imageService.Retrieve(c.Request.Context(), img)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image content not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get image content"},
		)
		ic.logger.Error("Retrieve() error", zap.Error(err), zap.Stringer("image_uuid", img.UUID))
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, img.ContentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", img.Name),
	})
}

func (ic *ImageController) CreateImageHandler(c *gin.Context) {
	var galleryID *uuid.UUID
	if s := c.PostForm("gallery_id"); s != "" {
		ok, id := validator.IsUUID(s)
		if !ok {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "gallery_id must be a valid UUID"},
			)
			return
		}
		galleryID = &id
	}

	ic.createImage(c, galleryID)
}

func (ic *ImageController) CreateGalleryImageHandler(c *gin.Context) {
	ok, galleryID := validator.IsUUID(c.Param("gallery_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "gallery_id must be a valid UUID"},
		)
		return
	}

	ic.createImage(c, &galleryID)
}

func (ic *ImageController) createImage(c *gin.Context, galleryID *uuid.UUID) {
	ok, contributor := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token subject"},
		)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 || fh.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large or empty"})
		return
	}

	var title, description *string
	if s := c.PostForm("title"); s != "" {
		title = &s
	}
	if s := c.PostForm("description"); s != "" {
		description = &s
	}
	if errs := validator.ValidateImageInfo(title, description); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	img, err := ic.imageService.Store(c.Request.Context(), contributor, ports.UploadRequest{
		Content:     f,
		ContentType: fh.Header.Get("Content-Type"),
		FileName:    fh.Filename,
		Title:       title,
		Description: description,
		Gallery:     galleryID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrForbiddenMimeType) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrGalleryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gallery not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to store an image"},
		)
		ic.logger.Error("Store() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, image.ToResponseImage(ic.baseURL, *img))
}

func (ic *ImageController) UpdateImageInfoHandler(c *gin.Context) {
	ok, imageUUID := validator.IsUUID(c.Param("image_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "image_id must be a valid UUID"},
		)
		return
	}
	ok, contributor := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token subject"},
		)
		return
	}

	var req image.InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateImageInfo(req.Title, req.Description); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	img, err := ic.imageService.UpdateImageInfo(c.Request.Context(), contributor, imageUUID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update an image"},
		)
		ic.logger.Error("UpdateImageInfo() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, image.ToResponseImage(ic.baseURL, *img))
}

func (ic *ImageController) DeleteImageHandler(c *gin.Context) {
	ok, imageUUID := validator.IsUUID(c.Param("image_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "image_id must be a valid UUID"},
		)
		return
	}
	ok, contributor := validator.IsUUID(c.GetString(middleware.CtxUserID))
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": "invalid token subject"},
		)
		return
	}

	err := ic.imageService.DeleteImage(c.Request.Context(), contributor, imageUUID)
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete an image"},
		)
		ic.logger.Error("DeleteImage() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
