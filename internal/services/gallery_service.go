package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"quote-intake-service/internal/ports"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type UploadImageRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Title       string
	Description string
}

// GalleryService keeps image bytes in a BlobStore and metadata in a GalleryRepository.
type GalleryService struct {
	repo  ports.GalleryRepository
	blobs ports.BlobStore
	now   func() time.Time
}

func NewGalleryService(repo ports.GalleryRepository, blobs ports.BlobStore) *GalleryService {
	return &GalleryService{repo: repo, blobs: blobs, now: time.Now}
}

func (s *GalleryService) List(ctx context.Context) ([]*domain.GalleryImage, error) {
	images, err := s.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return images, nil
}

// Upload stores the object first, then its metadata. A failed insert removes the object again.
func (s *GalleryService) Upload(ctx context.Context, req UploadImageRequest) (_ *domain.GalleryImage, err error) {
	defer obs.Time(ctx, "gallery.Upload")(&err)

	if req.Body == nil {
		return nil, errors.New("upload image: no file provided")
	}

	key := domain.GalleryImageKey(s.now(), req.Filename)
	if err := s.blobs.Put(ctx, key, req.Body, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img, err := s.repo.CreateImage(ctx, &domain.GalleryImage{
		Title:       optional(req.Title),
		Description: optional(req.Description),
		ImageKey:    key,
	})
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("orphaned gallery object")
		}
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return img, nil
}

// Open returns the stored object for key. Only keys under the gallery prefix
// are served. The caller must close Body.
func (s *GalleryService) Open(ctx context.Context, key string) (*ports.Blob, error) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasPrefix(key, domain.GalleryKeyPrefix) || path.Clean(key) != key {
		return nil, ErrImageNotFound
	}

	blob, err := s.blobs.Get(ctx, key)
	if errors.Is(err, ports.ErrBlobNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return blob, nil
}

func (s *GalleryService) Delete(ctx context.Context, id int64) (err error) {
	defer obs.Time(ctx, "gallery.Delete")(&err)

	img, err := s.repo.GetImage(ctx, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if img == nil {
		return ErrImageNotFound
	}

	if err := s.blobs.Delete(ctx, img.ImageKey); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if err := s.repo.DeleteImage(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
