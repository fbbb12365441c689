package handlers

import (
	"context"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/ports"
	"quote-intake-service/internal/services"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockGeocodeService struct{ mock.Mock }

func (m *MockGeocodeService) Forward(ctx context.Context, query string) (*domain.Position, error) {
	args := m.Called(ctx, query)
	pos, _ := args.Get(0).(*domain.Position)
	return pos, args.Error(1)
}

func (m *MockGeocodeService) Reverse(ctx context.Context, pos domain.Position) (string, error) {
	args := m.Called(ctx, pos)
	return args.String(0), args.Error(1)
}

type MockQuoteService struct{ mock.Mock }

func (m *MockQuoteService) Submit(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).(*domain.Quote)
	return out, args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*domain.Quote)
	return out, args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	args := m.Called(ctx, limit, offset)
	out, _ := args.Get(0).([]*domain.Quote)
	return out, args.Error(1)
}

type MockGalleryService struct{ mock.Mock }

func (m *MockGalleryService) List(ctx context.Context) ([]*domain.GalleryImage, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]*domain.GalleryImage)
	return out, args.Error(1)
}

func (m *MockGalleryService) Upload(ctx context.Context, req services.UploadImageRequest) (*domain.GalleryImage, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*domain.GalleryImage)
	return out, args.Error(1)
}

func (m *MockGalleryService) Open(ctx context.Context, key string) (*ports.Blob, error) {
	args := m.Called(ctx, key)
	out, _ := args.Get(0).(*ports.Blob)
	return out, args.Error(1)
}

func (m *MockGalleryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockSettingsService struct{ mock.Mock }

func (m *MockSettingsService) Get(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(domain.Settings)
	return out, args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(domain.Settings)
	return out, args.Error(1)
}

type MockAdminLogin struct{ mock.Mock }

func (m *MockAdminLogin) Login(password string) (string, time.Time, error) {
	args := m.Called(password)
	exp, _ := args.Get(1).(time.Time)
	return args.String(0), exp, args.Error(2)
}
