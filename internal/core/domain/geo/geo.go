// Package geo holds the geographic math used by dispatch: great-circle
// distance between two points and travel time at a fixed average speed.
//
// All functions are pure and safe for concurrent use.
package geo

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DefaultAverageSpeedKmh is the courier speed assumed when none is configured.
const DefaultAverageSpeedKmh = 30.0

// Distance returns the great-circle distance in kilometres between
// (lat1, lon1) and (lat2, lon2) using the haversine formula.
//
// Parameters:
//   - lat1, lon1: first point in decimal degrees
//   - lat2, lon2: second point in decimal degrees
//
// Returns:
//   - float64: distance in km, symmetric and >= 0
//   - error: errs.ErrInvalidCoordinate for NaN, infinite or out of range input
//
// Example:
//
//	km, err := geo.Distance(40, -73, 40.05, -73.05) // ≈ 7.0026
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := kernel.ValidateCoordinates(lat1, lon1); err != nil {
		return 0, err
	}
	if err := kernel.ValidateCoordinates(lat2, lon2); err != nil {
		return 0, err
	}

	return haversine(lat1, lon1, lat2, lon2), nil
}

// Between returns the distance in km between two constructed locations.
func Between(from, to kernel.Location) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}

	return haversine(from.Latitude(), from.Longitude(), to.Latitude(), to.Longitude()), nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// a can drift just above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Estimator converts distances into travel minutes at a constant speed.
type Estimator struct {
	averageSpeedKmh float64
}

// NewEstimator returns an Estimator for the given average speed in km/h.
// The speed must be a finite positive number.
func NewEstimator(averageSpeedKmh float64) (Estimator, error) {
	if math.IsNaN(averageSpeedKmh) || math.IsInf(averageSpeedKmh, 0) || averageSpeedKmh <= 0 {
		return Estimator{}, errs.NewValueIsOutOfRangeError("average speed", averageSpeedKmh, "0 (exclusive)", "+Inf")
	}
	return Estimator{averageSpeedKmh: averageSpeedKmh}, nil
}

// DefaultEstimator returns an Estimator running at DefaultAverageSpeedKmh.
func DefaultEstimator() Estimator {
	return Estimator{averageSpeedKmh: DefaultAverageSpeedKmh}
}

// AverageSpeedKmh returns the configured speed.
func (e Estimator) AverageSpeedKmh() float64 {
	if e.averageSpeedKmh <= 0 {
		return DefaultAverageSpeedKmh
	}
	return e.averageSpeedKmh
}

// EstimateMinutes returns round(km / speed * 60). Halves round away from zero.
//
// Example:
//
//	geo.DefaultEstimator().EstimateMinutes(30) // 60
func (e Estimator) EstimateMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / e.AverageSpeedKmh() * 60))
}
