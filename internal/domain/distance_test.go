package domain

import (
	"math"
	"testing"
)

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want float64
	}{
		{"same point", Position{Lat: 10, Lon: 20}, Position{Lat: 10, Lon: 20}, 0},
		{"one degree of longitude at the equator", Position{Lat: 0, Lon: 0}, Position{Lat: 0, Lon: 1}, 111.2},
		{"london to paris", Position{Lat: 51.5074, Lon: -0.1278}, Position{Lat: 48.8566, Lon: 2.3522}, 343.6},
		{"short hop near the equator", Position{Lat: 10.0, Lon: 20.0}, Position{Lat: 10.0, Lon: 20.09}, 9.9},
		{"antipodes", Position{Lat: 10, Lon: 20}, Position{Lat: -10, Lon: -160}, 20015.1},
		{"antipodes reversed", Position{Lat: -10, Lon: -160}, Position{Lat: 10, Lon: 20}, 20015.1},
		{"antipodes off the equator", Position{Lat: 45, Lon: 0}, Position{Lat: -45, Lon: 180}, 20015.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if got != tt.want {
				t.Fatalf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	points := []Position{
		{Lat: -33.814115120092275, Lon: 18.620667236860275},
		{Lat: -33.9249, Lon: 18.4241},
		{Lat: 89.9, Lon: 179.9},
		{Lat: -89.9, Lon: -179.9},
		{Lat: 0, Lon: 0},
		{Lat: 35.681236, Lon: 139.767125},
		{Lat: 10, Lon: 20},
		{Lat: -10, Lon: -160},
	}

	for _, a := range points {
		for _, b := range points {
			ab := Distance(a, b)
			ba := Distance(b, a)
			if ab != ba {
				t.Errorf("Distance(%v, %v) = %v but reverse = %v", a, b, ab, ba)
			}
		}
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, itself) = %v, want 0", a, d)
		}
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	got := Distance(Position{Lat: math.NaN(), Lon: 0}, Position{Lat: 1, Lon: 1})
	if !math.IsNaN(got) {
		t.Fatalf("Distance with NaN input = %v, want NaN", got)
	}
}

func TestEstimateCost(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	if got := EstimateCost(nil); got != 75.0 {
		t.Errorf("EstimateCost(nil) = %v, want 75", got)
	}
	if got := EstimateCost(ptr(0)); got != 75.0 {
		t.Errorf("EstimateCost(0) = %v, want 75", got)
	}
	if got := EstimateCost(ptr(10)); got != 100.0 {
		t.Errorf("EstimateCost(10) = %v, want 100", got)
	}
	if got := EstimateCost(ptr(9.9)); math.Abs(got-99.75) > 1e-9 {
		t.Errorf("EstimateCost(9.9) = %v, want 99.75", got)
	}

	prev := EstimateCost(ptr(0))
	for d := 0.5; d <= 500; d += 0.5 {
		cur := EstimateCost(ptr(d))
		if cur < prev {
			t.Fatalf("EstimateCost not monotone: price(%v) = %v < %v", d, cur, prev)
		}
		prev = cur
	}
}

func TestPositionValid(t *testing.T) {
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{Lat: 0, Lon: 0}, true},
		{Position{Lat: 90, Lon: 180}, true},
		{Position{Lat: -90, Lon: -180}, true},
		{Position{Lat: 90.1, Lon: 0}, false},
		{Position{Lat: 0, Lon: -180.5}, false},
		{Position{Lat: math.NaN(), Lon: 0}, false},
	}

	for _, tt := range tests {
		if got := tt.pos.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
