package services

import (
	"context"
	"io"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/ports"

	"github.com/stretchr/testify/mock"
)

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) CreateQuote(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	args := m.Called(ctx, q)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Quote) *domain.Quote); ok {
		return fn(ctx, q), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Quote)
	return created, args.Error(1)
}

func (m *MockQuoteRepository) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*domain.Quote)
	return q, args.Error(1)
}

func (m *MockQuoteRepository) ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	args := m.Called(ctx, limit, offset)
	qs, _ := args.Get(0).([]*domain.Quote)
	return qs, args.Error(1)
}

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) ListImages(ctx context.Context) ([]*domain.GalleryImage, error) {
	args := m.Called(ctx)
	imgs, _ := args.Get(0).([]*domain.GalleryImage)
	return imgs, args.Error(1)
}

func (m *MockGalleryRepository) CreateImage(ctx context.Context, img *domain.GalleryImage) (*domain.GalleryImage, error) {
	args := m.Called(ctx, img)
	created, _ := args.Get(0).(*domain.GalleryImage)
	return created, args.Error(1)
}

func (m *MockGalleryRepository) GetImage(ctx context.Context, id int64) (*domain.GalleryImage, error) {
	args := m.Called(ctx, id)
	img, _ := args.Get(0).(*domain.GalleryImage)
	return img, args.Error(1)
}

func (m *MockGalleryRepository) DeleteImage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, body, size, contentType).Error(0)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (*ports.Blob, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).(*ports.Blob)
	return b, args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(domain.Settings)
	return s, args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, s domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Forward(ctx context.Context, query string) (*domain.Position, error) {
	args := m.Called(ctx, query)
	pos, _ := args.Get(0).(*domain.Position)
	return pos, args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, pos domain.Position) (string, error) {
	args := m.Called(ctx, pos)
	return args.String(0), args.Error(1)
}

type MockGeocodeCache struct {
	mock.Mock
}

func (m *MockGeocodeCache) GetForward(ctx context.Context, query string) (*domain.Position, bool, error) {
	args := m.Called(ctx, query)
	pos, _ := args.Get(0).(*domain.Position)
	return pos, args.Bool(1), args.Error(2)
}

func (m *MockGeocodeCache) PutForward(ctx context.Context, query string, pos domain.Position) error {
	return m.Called(ctx, query, pos).Error(0)
}

func (m *MockGeocodeCache) GetReverse(ctx context.Context, pos domain.Position) (string, bool, error) {
	args := m.Called(ctx, pos)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockGeocodeCache) PutReverse(ctx context.Context, pos domain.Position, address string) error {
	return m.Called(ctx, pos, address).Error(0)
}
