package services

import (
	"context"
	"errors"
	"io"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/ports"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGallery() (*GalleryService, *MockGalleryRepository, *MockBlobStore) {
	repo := new(MockGalleryRepository)
	blobs := new(MockBlobStore)
	svc := NewGalleryService(repo, blobs)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, repo, blobs
}

func TestGalleryServiceUpload(t *testing.T) {
	svc, repo, blobs := newTestGallery()
	const key = "gallery/1700000000000-bar.jpg"

	body := strings.NewReader("jpeg")
	blobs.On("Put", mock.Anything, key, body, int64(4), "image/jpeg").Return(nil)
	repo.On("CreateImage", mock.Anything, mock.MatchedBy(func(img *domain.GalleryImage) bool {
		return img.ImageKey == key && img.Title != nil && *img.Title == "Bar" && img.Description == nil
	})).Return(&domain.GalleryImage{ID: 7, ImageKey: key}, nil)

	img, err := svc.Upload(context.Background(), UploadImageRequest{
		Filename:    "bar.jpg",
		ContentType: "image/jpeg",
		Size:        4,
		Body:        body,
		Title:       " Bar ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), img.ID)
	repo.AssertExpectations(t)
	blobs.AssertExpectations(t)
}

func TestGalleryServiceUploadCleansUpOnInsertFailure(t *testing.T) {
	svc, repo, blobs := newTestGallery()
	const key = "gallery/1700000000000-bar.jpg"

	blobs.On("Put", mock.Anything, key, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateImage", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	blobs.On("Delete", mock.Anything, key).Return(nil)

	_, err := svc.Upload(context.Background(), UploadImageRequest{Filename: "bar.jpg", Body: strings.NewReader("x"), Size: 1})
	require.Error(t, err)
	blobs.AssertCalled(t, "Delete", mock.Anything, key)
}

func TestGalleryServiceUploadRequiresFile(t *testing.T) {
	svc, _, blobs := newTestGallery()

	_, err := svc.Upload(context.Background(), UploadImageRequest{Filename: "a.jpg"})
	require.Error(t, err)
	blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGalleryServiceOpen(t *testing.T) {
	svc, _, blobs := newTestGallery()

	blob := &ports.Blob{Body: io.NopCloser(strings.NewReader("x")), ContentType: "image/png"}
	blobs.On("Get", mock.Anything, "gallery/1-a.png").Return(blob, nil)
	blobs.On("Get", mock.Anything, "gallery/missing.png").Return(nil, ports.ErrBlobNotFound)

	got, err := svc.Open(context.Background(), "/gallery/1-a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.ContentType)

	_, err = svc.Open(context.Background(), "gallery/missing.png")
	assert.ErrorIs(t, err, ErrImageNotFound)

	_, err = svc.Open(context.Background(), "")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestGalleryServiceOpenOnlyServesGalleryKeys(t *testing.T) {
	svc, _, blobs := newTestGallery()

	for _, key := range []string{
		"backups/db.sql",
		"/private/invoice.pdf",
		"gallery",
		"gallery/../backups/db.sql",
		"gallery//1-a.png",
	} {
		_, err := svc.Open(context.Background(), key)
		assert.ErrorIs(t, err, ErrImageNotFound, key)
	}
	blobs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGalleryServiceDelete(t *testing.T) {
	svc, repo, blobs := newTestGallery()

	repo.On("GetImage", mock.Anything, int64(3)).Return(&domain.GalleryImage{ID: 3, ImageKey: "gallery/3.jpg"}, nil)
	repo.On("GetImage", mock.Anything, int64(4)).Return(nil, nil)
	blobs.On("Delete", mock.Anything, "gallery/3.jpg").Return(nil)
	repo.On("DeleteImage", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrImageNotFound)

	repo.AssertExpectations(t)
	blobs.AssertExpectations(t)
}
