package services

import (
	"context"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"quote-intake-service/internal/ports"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// DefaultLookupTimeout bounds a single provider call.
const DefaultLookupTimeout = 5 * time.Second

// GeocodeService fronts a Geocoder with an optional cache.
// Concurrent identical lookups share one provider call.
type GeocodeService struct {
	provider ports.Geocoder
	cache    ports.GeocodeCache
	timeout  time.Duration
	group    singleflight.Group
}

// cache may be nil.
func NewGeocodeService(provider ports.Geocoder, cache ports.GeocodeCache) *GeocodeService {
	return &GeocodeService{
		provider: provider,
		cache:    cache,
		timeout:  DefaultLookupTimeout,
	}
}

// WithTimeout overrides the per-call provider timeout.
func (s *GeocodeService) WithTimeout(d time.Duration) *GeocodeService {
	s.timeout = d
	return s
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// Forward resolves an address. A nil position with a nil error means no match.
func (s *GeocodeService) Forward(ctx context.Context, query string) (_ *domain.Position, err error) {
	defer obs.Time(ctx, "geocode.Forward")(&err)

	q := normalizeQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	if s.cache != nil {
		pos, ok, err := s.cache.GetForward(ctx, q)
		if err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Str("query", q).Msg("geocode cache read failed")
		} else if ok {
			return pos, nil
		}
	}

	key := "fwd:" + strings.ToLower(q)
	v, err, _ := s.group.Do(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.provider.Forward(callCtx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("geocode forward %q: %w", q, err)
	}

	pos, _ := v.(*domain.Position)
	if pos == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.PutForward(ctx, q, *pos); err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Str("query", q).Msg("geocode cache write failed")
		}
	}
	// Callers must not share the singleflight result.
	out := *pos
	return &out, nil
}

// Reverse resolves coordinates to an address. "" with a nil error means no match.
func (s *GeocodeService) Reverse(ctx context.Context, pos domain.Position) (_ string, err error) {
	defer obs.Time(ctx, "geocode.Reverse")(&err)

	if !pos.Valid() {
		return "", errors.New("geocode reverse: position out of range")
	}

	if s.cache != nil {
		addr, ok, err := s.cache.GetReverse(ctx, pos)
		if err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Stringer("pos", pos).Msg("reverse geocode cache read failed")
		} else if ok {
			return addr, nil
		}
	}

	v, err, _ := s.group.Do("rev:"+pos.String(), func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.provider.Reverse(callCtx, pos)
	})
	if err != nil {
		return "", fmt.Errorf("geocode reverse %s: %w", pos, err)
	}

	addr, _ := v.(string)
	if addr == "" {
		return "", nil
	}

	if s.cache != nil {
		if err := s.cache.PutReverse(ctx, pos, addr); err != nil {
			log.Warn().Str("req_id", obs.RequestID(ctx)).Err(err).Stringer("pos", pos).Msg("reverse geocode cache write failed")
		}
	}
	return addr, nil
}
