package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// ImageHandler serves recipe photo uploads.
type ImageHandler struct {
	images  *service.ImageService
	auth    *service.AuthService
	limiter *middleware.RateLimiter
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(images *service.ImageService, auth *service.AuthService, limiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{
		images:  images,
		auth:    auth,
		limiter: limiter,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/images", middleware.AuthMiddleware(h.auth))
	if h.limiter != nil {
		group.Use(h.limiter.RateLimitMiddleware())
	}
	group.POST("/upload", h.Upload)
}

// Upload accepts a multipart form with an "image" file field and returns the
// stored public URL.
func (h *ImageHandler) Upload(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read image"})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "url": url})
}
