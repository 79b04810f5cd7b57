package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	dakar := Point{Lat: 14.6928, Lng: -17.4467}
	thies := Point{Lat: 14.7910, Lng: -16.9359}

	tests := []struct {
		name string
		a, b Point
		want float64
		tol  float64
	}{
		{"same point", dakar, dakar, 0, 0.001},
		{"one degree of latitude", Point{0, 0}, Point{1, 0}, 111195, 1},
		{"dakar to thies", dakar, thies, 56000, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, tt.tol)
			assert.InDelta(t, got, Distance(tt.b, tt.a), 1e-6, "distance is symmetric")
		})
	}
}

func TestWithin(t *testing.T) {
	store := Point{Lat: 14.6928, Lng: -17.4467}

	// ~0.0005 degrees of latitude is about 55 m.
	require.NoError(t, Within(Point{Lat: 14.6933, Lng: -17.4467}, store, CheckInRadius))

	err := Within(Point{Lat: 14.6948, Lng: -17.4467}, store, CheckInRadius)
	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor), "expected OutOfRangeError, got %v", err)
	assert.InDelta(t, 222, oor.Distance, 2)
	assert.Equal(t, "position is 222 m from the store (max 100 m)", oor.Error())
}

func TestWithin_InvalidCoordinates(t *testing.T) {
	store := Point{Lat: 14.6928, Lng: -17.4467}

	err := Within(Point{Lat: 91, Lng: 0}, store, CheckInRadius)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")

	err = Within(store, Point{Lat: math.NaN(), Lng: 0}, CheckInRadius)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store position")
}

func TestPoint(t *testing.T) {
	assert.True(t, Point{Lat: -33.9, Lng: 151.2}.Valid())
	assert.False(t, Point{Lat: 0, Lng: 200}.Valid())
	assert.Equal(t, "14.692800,-17.446700", Point{Lat: 14.6928, Lng: -17.4467}.String())
}
