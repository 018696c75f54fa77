package kernel

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// DefaultJitterSpread is the per-axis offset, in decimal degrees, applied
	// by the jitter fallback when no real position is available.
	DefaultJitterSpread = 0.05
)

// ErrCoordinateIsNotConstructed is returned when attempting to use an improperly
// initialized Coordinate. Coordinates must be created via NewCoordinate or
// NewJitteredCoordinate to ensure validity.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate or NewJitteredCoordinate constructors")

// Coordinate represents a geographic position in decimal degrees.
// Coordinate is an immutable value object that ensures latitude and longitude
// are always within valid bounds. The zero value is invalid and will fail
// validation - use the constructors to create instances.
//
// Example:
//
//	coord, err := kernel.NewCoordinate(-23.5505, -46.6333)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Position: %s", coord) // Output: Coordinate(-23.550500,-46.633300)
type Coordinate struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate with the specified latitude and longitude.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]. Returns an error if either is out of bounds.
func NewCoordinate(lat float64, lng float64) (Coordinate, error) {
	coord := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coord.setLat(lat), coord.setLng(lng)); err != nil {
		return Coordinate{}, err
	}

	return coord, nil
}

// NewJitteredCoordinate creates a Coordinate randomly offset from a center point.
// Each axis is shifted by a uniform value in [-spread..+spread] degrees, then
// clamped to valid bounds. This is the fallback used when no real position is
// known: failed geocode lookups and drivers that have never reported a position
// both receive a jittered point around the configured city center.
//
// Returns:
//   - Coordinate: A valid coordinate near the center
//   - error: Validation error if the center itself is invalid
func NewJitteredCoordinate(center Coordinate, spread float64) (Coordinate, error) {
	if err := center.Validate(); err != nil {
		return Coordinate{}, err
	}

	lat := clamp(center.lat+(rand.Float64()*2-1)*spread, LatitudeMin, LatitudeMax)
	lng := clamp(center.lng+(rand.Float64()*2-1)*spread, LongitudeMin, LongitudeMax)
	return NewCoordinate(lat, lng)
}

// Validate checks if the Coordinate was properly constructed using a constructor.
// The zero value of Coordinate is invalid and will fail this validation.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (c Coordinate) Lat() float64 {
	return c.lat
}

// Lng returns the longitude in decimal degrees.
func (c Coordinate) Lng() float64 {
	return c.lng
}

// String returns a human-readable representation of the Coordinate.
// This method implements the fmt.Stringer interface.
func (c Coordinate) String() string {
	return fmt.Sprintf("Coordinate(%f,%f)", c.lat, c.lng)
}

// IsEqual compares two coordinates for exact equality.
// Both coordinates must be properly constructed for the comparison to succeed.
func (c Coordinate) IsEqual(other Coordinate) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.lat == other.lat && c.lng == other.lng, nil
}

// DistanceKm calculates the great-circle distance to another coordinate in
// kilometers using the haversine formula with a mean Earth radius of 6371 km.
// The result is symmetric and approximately zero for equal points.
// Both coordinates must be properly constructed for the calculation to succeed.
//
// Example:
//
//	saoPaulo, _ := kernel.NewCoordinate(-23.5505, -46.6333)
//	rio, _ := kernel.NewCoordinate(-22.9068, -43.1729)
//
//	km, err := saoPaulo.DistanceKm(rio)
//	// km ≈ 361, err = nil
func (c Coordinate) DistanceKm(other Coordinate) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := c.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - c.lat) * math.Pi / 180
	dLng := (other.lng - c.lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

// StepToward returns the coordinate advanced toward a target by at most step
// degrees on each axis independently. An axis within one step of the target
// snaps onto it, which prevents overshoot and oscillation around the
// destination. This is deliberately a linear per-axis interpolation, not a
// routing model.
//
// Parameters:
//   - target: The destination coordinate (must be valid)
//   - step: Maximum movement per axis in decimal degrees (must be positive)
//
// Returns:
//   - Coordinate: The advanced position
//   - error: Validation error if either coordinate is invalid or step is not positive
func (c Coordinate) StepToward(target Coordinate, step float64) (Coordinate, error) {
	if err := errors.Join(c.Validate(), target.Validate()); err != nil {
		return Coordinate{}, err
	}
	if step <= 0 {
		return Coordinate{}, errs.NewValueIsInvalidError("step")
	}

	return NewCoordinate(
		stepAxis(c.lat, target.lat, step),
		stepAxis(c.lng, target.lng, step),
	)
}

// stepAxis moves a single axis value toward a target, snapping when within one step.
func stepAxis(current, target, step float64) float64 {
	delta := target - current
	if math.Abs(delta) <= step {
		return target
	}
	if delta > 0 {
		return current + step
	}
	return current - step
}

func clamp(v, minValue, maxValue float64) float64 {
	if v < minValue {
		return minValue
	}
	if v > maxValue {
		return maxValue
	}
	return v
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value
// receivers, so construction can run self-encapsulated validation.
func (c *Coordinate) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	c.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (c *Coordinate) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	c.lng = lng
	return nil
}
