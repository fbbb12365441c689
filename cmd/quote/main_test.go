package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"quote-intake-service/internal/adapters/geocoding"
	"quote-intake-service/internal/api"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/services"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var business = domain.Position{Lat: 10, Lon: 20.09}

type memQuotes struct {
	mu     sync.Mutex
	quotes []*domain.Quote
}

func (m *memQuotes) CreateQuote(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *q
	out.ID = int64(len(m.quotes) + 1)
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	m.quotes = append(m.quotes, &out)
	return &out, nil
}

func (m *memQuotes) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || int(id) > len(m.quotes) {
		return nil, nil
	}
	return m.quotes[id-1], nil
}

func (m *memQuotes) ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Quote(nil), m.quotes...), nil
}

type noAuth struct{}

func (noAuth) Login(string) (string, time.Time, error) { return "", time.Time{}, services.ErrInvalidCredentials }
func (noAuth) Verify(string) error                     { return services.ErrInvalidCredentials }

func newTestServer(t *testing.T) (*httptest.Server, *memQuotes) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	geocoder := geocoding.NewMockGeocoder([]geocoding.MockPlace{
		{Query: "123 Main St", Address: "123 Main St, Springfield", Pos: domain.Position{Lat: 10, Lon: 20}},
	})
	quotes := &memQuotes{}
	router := api.NewRouter(api.Deps{
		Geocode: services.NewGeocodeService(geocoder, nil),
		Quotes:  services.NewQuoteService(quotes, business),
		Auth:    noAuth{},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, quotes
}

func contactArgs(apiURL string) []string {
	return []string{
		"-api", apiURL,
		"-name", "Ada",
		"-email", "ada@example.com",
		"-issue", "Grinder jams",
		"-debounce", "10ms",
		"-timeout", "2s",
	}
}

func TestRunGeocodesAddressAndSubmits(t *testing.T) {
	srv, quotes := newTestServer(t)

	var out bytes.Buffer
	args := append(contactArgs(srv.URL), "-address", "123 Main St")
	require.NoError(t, run(context.Background(), args, &out, business))

	assert.Contains(t, out.String(), "Quote #1 submitted for 123 Main St, Springfield")
	assert.Contains(t, out.String(), "Travel distance: 9.9 km")
	assert.Contains(t, out.String(), "Estimated cost: $99.75")

	require.Len(t, quotes.quotes, 1)
	stored := quotes.quotes[0]
	assert.Equal(t, domain.Position{Lat: 10, Lon: 20}, stored.Shop)
	assert.Equal(t, "123 Main St, Springfield", stored.ShopAddress)
	assert.InDelta(t, 99.75, stored.EstimatedCost, 1e-9)
}

func TestRunWithPin(t *testing.T) {
	srv, quotes := newTestServer(t)

	var out bytes.Buffer
	args := append(contactArgs(srv.URL), "-lat", "10", "-lon", "20")
	require.NoError(t, run(context.Background(), args, &out, business))

	assert.Contains(t, out.String(), "submitted for 123 Main St, Springfield")
	require.Len(t, quotes.quotes, 1)
	assert.Equal(t, domain.Position{Lat: 10, Lon: 20}, quotes.quotes[0].Shop)
}

func TestRunUnknownAddressPricesFromBusiness(t *testing.T) {
	srv, quotes := newTestServer(t)

	var out bytes.Buffer
	args := append(contactArgs(srv.URL), "-address", "Nowhere Lane")
	require.NoError(t, run(context.Background(), args, &out, business))

	assert.Contains(t, out.String(), `Warning: "Nowhere Lane" could not be located`)
	assert.Contains(t, out.String(), "Estimated cost: $75.00")
	require.Len(t, quotes.quotes, 1)
	assert.Equal(t, business, quotes.quotes[0].Shop)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no location", []string{"-name", "Ada"}},
		{"lat without lon", []string{"-lat", "10"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}

func TestRunRejectsMissingContact(t *testing.T) {
	srv, quotes := newTestServer(t)

	err := run(context.Background(), []string{"-api", srv.URL, "-address", "123 Main St"}, &bytes.Buffer{}, business)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact details")
	assert.Empty(t, quotes.quotes)
}
