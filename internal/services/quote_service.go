package services

import (
	"context"
	"fmt"
	"math"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
	"quote-intake-service/internal/ports"

	"github.com/rs/zerolog/log"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	// Client distances further than this from the server's are logged.
	distanceDriftKm = 0.1
)

// QuoteService records quote requests. Distance and price are always
// recomputed here from the shop coordinates; the client's values are advisory.
type QuoteService struct {
	repo     ports.QuoteRepository
	business domain.Position
}

func NewQuoteService(repo ports.QuoteRepository, business domain.Position) *QuoteService {
	return &QuoteService{repo: repo, business: business}
}

// Business returns the reference location quotes are priced from.
func (s *QuoteService) Business() domain.Position {
	return s.business
}

// Submit validates, prices and stores a new quote with status pending.
func (s *QuoteService) Submit(ctx context.Context, in *domain.Quote) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "quotes.Submit")(&err)

	if in == nil {
		return nil, fmt.Errorf("submit quote: %w: empty request", ErrInvalidQuote)
	}
	q := *in

	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("submit quote: %w: %w", ErrInvalidQuote, err)
	}

	dist := domain.Distance(s.business, q.Shop)
	if claimed := in.TravelDistanceKm; claimed != nil && math.Abs(*claimed-dist) > distanceDriftKm {
		log.Info().
			Str("req_id", obs.RequestID(ctx)).
			Float64("client_km", *claimed).
			Float64("server_km", dist).
			Msg("client travel distance disagrees, using server value")
	}

	q.TravelDistanceKm = &dist
	q.EstimatedCost = domain.EstimateCost(&dist)
	q.Status = domain.QuoteStatusPending

	created, err := s.repo.CreateQuote(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("submit quote: %w", err)
	}
	return created, nil
}

func (s *QuoteService) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	q, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if q == nil {
		return nil, ErrQuoteNotFound
	}
	return q, nil
}

// List returns quotes newest first. limit is clamped to [1, 200]; 0 means 50.
func (s *QuoteService) List(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	quotes, err := s.repo.ListQuotes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}
