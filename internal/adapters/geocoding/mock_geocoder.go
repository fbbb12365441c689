package geocoding

import (
	"context"
	"quote-intake-service/internal/domain"
)

type MockPlace struct {
	Query   string
	Address string
	Pos     domain.Position
}

// MockGeocoder resolves a fixed set of places in both directions. Lookups
// for anything else report no match.
type MockGeocoder struct {
	forward map[string]domain.Position
	reverse map[domain.Position]string
}

func NewMockGeocoder(places []MockPlace) *MockGeocoder {
	m := &MockGeocoder{
		forward: make(map[string]domain.Position, len(places)),
		reverse: make(map[domain.Position]string, len(places)),
	}
	for _, p := range places {
		m.forward[Normalize(p.Query)] = p.Pos
		m.reverse[p.Pos] = p.Address
	}
	return m
}

func (m *MockGeocoder) Forward(ctx context.Context, query string) (*domain.Position, error) {
	pos, ok := m.forward[Normalize(query)]
	if !ok {
		return nil, nil
	}
	return &pos, nil
}

func (m *MockGeocoder) Reverse(ctx context.Context, pos domain.Position) (string, error) {
	return m.reverse[pos], nil
}
