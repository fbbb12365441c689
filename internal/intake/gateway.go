package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"quote-intake-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Gateway resolves addresses and coordinates. A false result covers every
// failure mode; implementations never return errors to the workflow.
type Gateway interface {
	Forward(ctx context.Context, address string) (domain.Position, bool)
	Reverse(ctx context.Context, pos domain.Position) (string, bool)
}

// HTTPGateway calls the backend's /api/geocode and /api/reverse-geocode.
type HTTPGateway struct {
	baseURL *url.URL
	client  *http.Client
}

func NewHTTPGateway(baseURL string, client *http.Client) (*HTTPGateway, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("new http gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("new http gateway: base url %q must be absolute", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: u, client: client}, nil
}

type forwardResponse struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type reverseResponse struct {
	Address string `json:"address"`
}

func (g *HTTPGateway) Forward(ctx context.Context, address string) (domain.Position, bool) {
	pos, err := g.forward(ctx, address)
	if err != nil {
		logMiss(ctx, "forward", err)
		return domain.Position{}, false
	}
	return pos, true
}

func (g *HTTPGateway) Reverse(ctx context.Context, pos domain.Position) (string, bool) {
	addr, err := g.reverse(ctx, pos)
	if err != nil {
		logMiss(ctx, "reverse", err)
		return "", false
	}
	return addr, true
}

func (g *HTTPGateway) forward(ctx context.Context, address string) (domain.Position, error) {
	q := url.Values{}
	q.Set("q", address)

	var body forwardResponse
	if err := g.getJSON(ctx, "/api/geocode", q, &body); err != nil {
		return domain.Position{}, err
	}
	if body.Lat == nil || body.Lon == nil {
		return domain.Position{}, ErrLookupMiss
	}

	pos := domain.Position{Lat: *body.Lat, Lon: *body.Lon}
	if !pos.Valid() {
		return domain.Position{}, fmt.Errorf("%w: position %s out of range", ErrLookupMiss, pos)
	}
	return pos, nil
}

func (g *HTTPGateway) reverse(ctx context.Context, pos domain.Position) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(pos.Lon, 'f', -1, 64))

	var body reverseResponse
	if err := g.getJSON(ctx, "/api/reverse-geocode", q, &body); err != nil {
		return "", err
	}
	if strings.TrimSpace(body.Address) == "" {
		return "", ErrLookupMiss
	}
	return body.Address, nil
}

func (g *HTTPGateway) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := g.baseURL.JoinPath(path)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrLookupMiss, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookupMiss, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %s", ErrLookupMiss, path, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrLookupMiss, path, err)
	}
	return nil
}

// Superseded lookups are cancelled routinely and only logged at debug.
func logMiss(ctx context.Context, op string, err error) {
	evt := log.Warn()
	if errors.Is(ctx.Err(), context.Canceled) {
		evt = log.Debug()
	}
	evt.Str("op", "intake."+op).Err(err).Msg("geocode lookup miss")
}
