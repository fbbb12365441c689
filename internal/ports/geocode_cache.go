package ports

import (
	"context"
	"quote-intake-service/internal/domain"
)

// Optional cache in front of a Geocoder. Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetForward(ctx context.Context, query string) (*domain.Position, bool, error)
	PutForward(ctx context.Context, query string, pos domain.Position) error
	GetReverse(ctx context.Context, pos domain.Position) (string, bool, error)
	PutReverse(ctx context.Context, pos domain.Position, address string) error
}
