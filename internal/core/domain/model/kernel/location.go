package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Coordinate bounds in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrLocationIsNotConstructed is returned when a zero value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable WGS84 point (latitude, longitude in degrees).
// The zero value is invalid: (0,0) is a legitimate point in the Gulf of
// Guinea, so "unknown location" is modelled by the absence of a Location
// (a nil *Location), never by a zero value.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.4168, -3.7038)
//	if err != nil {
//	    // errors.Is(err, errs.ErrInvalidCoordinate)
//	}
//	fmt.Println(loc) // Location(40.416800,-3.703800)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location after checking both coordinates.
//
// Returns:
//   - Location: a valid location
//   - error: joined InvalidCoordinate errors for every bad coordinate
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewOptionalLocation builds a *Location from nullable coordinates as they
// come from storage or request bodies. Both nil means "unknown" and yields
// (nil, nil); exactly one nil is a MissingCoordinates error.
func NewOptionalLocation(latitude, longitude *float64) (*Location, error) {
	if latitude == nil && longitude == nil {
		return nil, nil //nolint:nilnil // unknown location is not an error
	}
	if latitude == nil || longitude == nil {
		return nil, errs.NewMissingCoordinatesError("location requires both latitude and longitude")
	}

	loc, err := NewLocation(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// ValidateCoordinates checks a raw coordinate pair without building a Location.
func ValidateCoordinates(latitude, longitude float64) error {
	return errors.Join(validateLatitude(latitude), validateLongitude(longitude))
}

// Validate checks that the Location was built by a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual reports whether both locations denote the same point.
// Both locations must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

func (l *Location) setLatitude(latitude float64) error {
	if err := validateLatitude(latitude); err != nil {
		return err
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if err := validateLongitude(longitude); err != nil {
		return err
	}

	l.longitude = longitude
	return nil
}

func validateLatitude(v float64) error {
	if !isFinite(v) || v < MinLatitude || v > MaxLatitude {
		return errs.NewInvalidCoordinateError("latitude", v)
	}
	return nil
}

func validateLongitude(v float64) error {
	if !isFinite(v) || v < MinLongitude || v > MaxLongitude {
		return errs.NewInvalidCoordinateError("longitude", v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
