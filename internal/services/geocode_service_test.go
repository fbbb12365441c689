package services

import (
	"context"
	"errors"
	"quote-intake-service/internal/adapters/geocoding"
	"quote-intake-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGeocodeServiceForward(t *testing.T) {
	provider := geocoding.NewMockGeocoder([]geocoding.MockPlace{
		{Query: "123 Main St", Address: "123 Main St, Springfield", Pos: domain.Position{Lat: 10, Lon: 20}},
	})
	svc := NewGeocodeService(provider, nil)
	ctx := context.Background()

	pos, err := svc.Forward(ctx, "  123   Main St")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, domain.Position{Lat: 10, Lon: 20}, *pos)

	miss, err := svc.Forward(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, miss)

	_, err = svc.Forward(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	addr, err := svc.Reverse(ctx, domain.Position{Lat: 10, Lon: 20})
	require.NoError(t, err)
	assert.Equal(t, "123 Main St, Springfield", addr)
}

func TestGeocodeServiceUsesCache(t *testing.T) {
	provider := new(MockGeocoder)
	cache := new(MockGeocodeCache)
	svc := NewGeocodeService(provider, cache)
	ctx := context.Background()

	hit := &domain.Position{Lat: 1, Lon: 2}
	cache.On("GetForward", mock.Anything, "Cape Town").Return(hit, true, nil)

	pos, err := svc.Forward(ctx, "Cape Town")
	require.NoError(t, err)
	assert.Equal(t, hit, pos)
	provider.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestGeocodeServiceFillsCacheOnMiss(t *testing.T) {
	provider := new(MockGeocoder)
	cache := new(MockGeocodeCache)
	svc := NewGeocodeService(provider, cache)
	ctx := context.Background()

	pos := domain.Position{Lat: -33.9249, Lon: 18.4241}
	cache.On("GetForward", mock.Anything, "Cape Town").Return(nil, false, errors.New("redis down"))
	provider.On("Forward", mock.Anything, "Cape Town").Return(&pos, nil).Once()
	cache.On("PutForward", mock.Anything, "Cape Town", pos).Return(errors.New("redis down"))

	got, err := svc.Forward(ctx, "Cape Town")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pos, *got)

	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestGeocodeServiceReverseSkipsEmptyResults(t *testing.T) {
	provider := new(MockGeocoder)
	cache := new(MockGeocodeCache)
	svc := NewGeocodeService(provider, cache)
	ctx := context.Background()

	pos := domain.Position{Lat: 0, Lon: 0}
	cache.On("GetReverse", mock.Anything, pos).Return("", false, nil)
	provider.On("Reverse", mock.Anything, pos).Return("", nil)

	addr, err := svc.Reverse(ctx, pos)
	require.NoError(t, err)
	assert.Empty(t, addr)
	cache.AssertNotCalled(t, "PutReverse", mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.Reverse(ctx, domain.Position{Lat: 100, Lon: 0})
	assert.Error(t, err)
}

type slowGeocoder struct{}

func (slowGeocoder) Forward(ctx context.Context, query string) (*domain.Position, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowGeocoder) Reverse(ctx context.Context, pos domain.Position) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGeocodeServiceTimesOut(t *testing.T) {
	svc := NewGeocodeService(slowGeocoder{}, nil).WithTimeout(20 * time.Millisecond)

	start := time.Now()
	_, err := svc.Forward(context.Background(), "Cape Town")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
