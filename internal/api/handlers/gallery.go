package handlers

import (
	"context"
	"errors"
	"net/http"
	"quote-intake-service/internal/api/dto"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/ports"
	"quote-intake-service/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type GalleryService interface {
	List(ctx context.Context) ([]*domain.GalleryImage, error)
	Upload(ctx context.Context, req services.UploadImageRequest) (*domain.GalleryImage, error)
	Open(ctx context.Context, key string) (*ports.Blob, error)
	Delete(ctx context.Context, id int64) error
}

type GalleryHandler struct {
	Svc GalleryService
	// MaxUploadBytes caps the multipart body; zero means unlimited.
	MaxUploadBytes int64
}

func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.Svc.List(c.Request.Context())
	if err != nil {
		internalError(c, "gallery.list", err)
		return
	}

	res := make([]dto.GalleryImageResponse, 0, len(images))
	for _, img := range images {
		res = append(res, dto.GalleryImageResponse{
			ID:           img.ID,
			Title:        img.Title,
			Description:  img.Description,
			ImageKey:     img.ImageKey,
			DisplayOrder: img.DisplayOrder,
			IsFeatured:   img.IsFeatured,
			CreatedAt:    img.CreatedAt,
			UpdatedAt:    img.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(c, http.StatusBadRequest, "No file provided")
		return
	}

	f, err := fh.Open()
	if err != nil {
		internalError(c, "gallery.upload", err)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	img, err := h.Svc.Upload(c.Request.Context(), services.UploadImageRequest{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	})
	if err != nil {
		internalError(c, "gallery.upload", err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadImageResponse{Success: true, ImageID: img.ID, Key: img.ImageKey})
}

// Image streams an object by key. Keys embed the upload time, so responses are cached for a year.
func (h *GalleryHandler) Image(c *gin.Context) {
	blob, err := h.Svc.Open(c.Request.Context(), c.Param("key"))
	if errors.Is(err, services.ErrImageNotFound) {
		writeError(c, http.StatusNotFound, "image not found")
		return
	}
	if err != nil {
		internalError(c, "gallery.image", err)
		return
	}
	defer blob.Body.Close()

	headers := map[string]string{"Cache-Control": "public, max-age=31536000"}
	if blob.ETag != "" {
		headers["ETag"] = blob.ETag
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, blob.ContentLength, contentType, blob.Body, headers)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid image id")
		return
	}

	err = h.Svc.Delete(c.Request.Context(), id)
	if errors.Is(err, services.ErrImageNotFound) {
		writeError(c, http.StatusNotFound, "image not found")
		return
	}
	if err != nil {
		internalError(c, "gallery.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
