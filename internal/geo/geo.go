// Package geo checks that an attendance check-in happens close enough to the
// assigned store.
package geo

import (
	"fmt"
	"math"

	"github.com/stockpro/stockpro-cli/internal/validation"
)

const (
	earthRadiusMeters = 6371000.0

	// CheckInRadius is how far from the store a check-in is accepted.
	CheckInRadius = 100.0
)

// Point is a WGS84 position in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Valid reports whether the coordinates are within range.
func (p Point) Valid() bool {
	return validation.ValidateCoordinates(p.Lat, p.Lng) == nil
}

// Distance returns the great-circle distance in meters.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// OutOfRangeError is returned when a position is too far from the store.
type OutOfRangeError struct {
	Distance float64
	Radius   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position is %.0f m from the store (max %.0f m)", e.Distance, e.Radius)
}

// Within returns nil when pos is at most radius meters from store, otherwise
// an *OutOfRangeError carrying the distance.
func Within(pos, store Point, radius float64) error {
	if err := validation.ValidateCoordinates(pos.Lat, pos.Lng); err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}
	if err := validation.ValidateCoordinates(store.Lat, store.Lng); err != nil {
		return fmt.Errorf("invalid store position: %w", err)
	}
	if d := Distance(pos, store); d > radius {
		return &OutOfRangeError{Distance: d, Radius: radius}
	}
	return nil
}
