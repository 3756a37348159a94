package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	p := Point{Lat: 26.2567, Lng: -80.08}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name string
		p1   Point
		p2   Point
		km   float64
	}{
		{
			name: "new york to los angeles",
			p1:   Point{Lat: 40.7128, Lng: -74.0060},
			p2:   Point{Lat: 34.0522, Lng: -118.2437},
			km:   3935.7,
		},
		{
			name: "london to paris",
			p1:   Point{Lat: 51.5074, Lng: -0.1278},
			p2:   Point{Lat: 48.8566, Lng: 2.3522},
			km:   343.5,
		},
		{
			name: "across the antimeridian",
			p1:   Point{Lat: 0, Lng: 179.5},
			p2:   Point{Lat: 0, Lng: -179.5},
			km:   111.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p1, tt.p2)
			assert.InDelta(t, tt.km, got, tt.km*0.01, "distance should be within 1 percent")
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	p1 := Point{Lat: 60.2042, Lng: 25.6258}
	p2 := Point{Lat: 59.9747, Lng: 24.5281}
	assert.InDelta(t, Distance(p1, p2), Distance(p2, p1), 1e-12)
}
