package ports

import (
	"context"
	"quote-intake-service/internal/domain"
)

// Port: gallery image metadata.
type GalleryRepository interface {
	ListImages(ctx context.Context) ([]*domain.GalleryImage, error)
	CreateImage(ctx context.Context, img *domain.GalleryImage) (*domain.GalleryImage, error)
	// Return the image with the given id, or nil when it does not exist.
	GetImage(ctx context.Context, id int64) (*domain.GalleryImage, error)
	DeleteImage(ctx context.Context, id int64) error
}
