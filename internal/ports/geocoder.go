package ports

import (
	"context"
	"quote-intake-service/internal/domain"
)

// Contract for an external address lookup provider.
type Geocoder interface {
	// Resolve a free-text address. A nil position with a nil error means no match.
	Forward(ctx context.Context, query string) (*domain.Position, error)
	// Resolve coordinates to a formatted address. "" with a nil error means no match.
	Reverse(ctx context.Context, pos domain.Position) (string, error)
}
