package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

// Nominatim implements ports.Geocoder using the OpenStreetMap Nominatim API.
//
// It coordinates:
//   - Query normalization
//   - Forward (/search) and reverse (/reverse) lookups
//   - Retry with backoff for transient failures
//
// The provider is safe for concurrent use.
type Nominatim struct {
	session   *http.Client
	baseURL   string
	userAgent string
}

func NewNominatim(baseURL, userAgent string) (*Nominatim, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nominatim base url is empty")
	}
	// Nominatim's usage policy rejects requests without an identifying agent.
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}

	return &Nominatim{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
	}, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Normalize collapses whitespace so equivalent queries share cache keys.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Forward resolves a free-text address to the best matching position.
func (n *Nominatim) Forward(ctx context.Context, query string) (_ *domain.Position, err error) {
	defer obs.Time(ctx, "nominatim.Forward")(&err)

	norm := Normalize(query)
	if norm == "" {
		return nil, errors.New("nominatim forward: query must be non-empty")
	}

	endpoint := n.baseURL + "/search"
	resp, err := n.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "jsonv2")
		q.Set("q", norm)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("nominatim forward %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("nominatim forward: decode response: %w", err)
	}

	if len(decoded) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim forward: invalid latitude %q for %q", decoded[0].Lat, norm)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim forward: invalid longitude %q for %q", decoded[0].Lon, norm)
	}

	pos := domain.Position{Lat: lat, Lon: lon}
	if !pos.Valid() {
		return nil, fmt.Errorf("nominatim forward: position %s out of range for %q", pos, norm)
	}

	return &pos, nil
}
