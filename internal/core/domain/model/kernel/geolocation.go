package kernel

import (
	"errors"
	"fmt"
	"math"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
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

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0
)

// ErrGeoLocationIsNotConstructed is returned when attempting to use an improperly
// initialized GeoLocation. Locations must be created via NewGeoLocation.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewGeoLocation constructor")

// GeoLocation represents a point on the Earth's surface with validated coordinates.
// GeoLocation is an immutable value object; the zero value is invalid and fails
// validation, so instances must be created through NewGeoLocation.
//
// Example:
//
//	loc, err := kernel.NewGeoLocation(12.9716, 77.5946)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: GeoLocation(12.9716,77.5946)
type GeoLocation struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoLocation creates a new GeoLocation with the specified coordinates.
// Latitude must be within [LatitudeMin, LatitudeMax] and longitude within
// [LongitudeMin, LongitudeMax]; both must be finite numbers.
//
// Returns:
//   - GeoLocation: A valid location instance
//   - error: Validation error if either coordinate is out of bounds or not finite
func NewGeoLocation(lat float64, lng float64) (GeoLocation, error) {
	loc := GeoLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return GeoLocation{}, err
	}

	return loc, nil
}

// Validate checks if the GeoLocation was properly constructed via NewGeoLocation.
// The zero value of GeoLocation is invalid and will fail this validation.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (l GeoLocation) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in decimal degrees.
func (l GeoLocation) Lng() float64 {
	return l.lng
}

// String returns a human-readable representation in the form "GeoLocation(lat,lng)".
// This method implements the fmt.Stringer interface.
func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%.4f,%.4f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality of coordinates.
// Both locations must be properly constructed for the comparison to succeed.
func (l GeoLocation) IsEqual(other GeoLocation) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceTo calculates the great-circle (haversine) distance to another
// location in kilometers. Both locations must be properly constructed.
//
// Example:
//
//	blr, _ := kernel.NewGeoLocation(12.9716, 77.5946)
//	maa, _ := kernel.NewGeoLocation(13.0827, 80.2707)
//	km, _ := blr.DistanceTo(maa) // ≈ 290
func (l GeoLocation) DistanceTo(other GeoLocation) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := (other.lat - l.lat) * math.Pi / 180
	dLng := (other.lng - l.lng) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(l.lat*math.Pi/180)*math.Cos(other.lat*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c, nil
}

// setLat sets the latitude with validation.
// Note: pointer receiver on a value-object setter enables self-encapsulated
// validation during construction, mirroring the rest of the kernel.
func (l *GeoLocation) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (l *GeoLocation) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}
