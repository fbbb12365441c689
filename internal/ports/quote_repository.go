package ports

import (
	"context"
	"quote-intake-service/internal/domain"
)

// Port: durable record of submitted quotes.
type QuoteRepository interface {
	// Insert a quote and return it with id, status and timestamps assigned by the store.
	CreateQuote(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	// Return the quote with the given id, or nil when it does not exist.
	GetQuote(ctx context.Context, id int64) (*domain.Quote, error)
	// Return quotes newest first.
	ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error)
}
