package domain

import (
	"fmt"
	"math"
)

// Immutable geographic position (latitude, longitude) in decimal degrees.
type Position struct {
	Lat float64
	Lon float64
}

// Valid reports whether the position lies within geographic ranges.
func (p Position) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Position) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}
