package routing

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrOracleUnavailable is returned when an estimator cannot produce an
// estimate. Callers are expected to fall back to a conservative straight-line
// estimate and flag the result as degraded.
var ErrOracleUnavailable = errors.New("distance oracle is unavailable")

// DefaultSpeedKmh is the average fleet travel speed assumed when no
// operational measurement is available.
const DefaultSpeedKmh = 40.0

// Estimate is the oracle's answer for one leg.
type Estimate struct {
	DistanceKm float64
	Duration   time.Duration
}

// DistanceEstimator answers how far and how long a leg is, given the departure
// time and the weather it will be driven under. Implementations must be
// deterministic: identical inputs yield identical estimates.
type DistanceEstimator interface {
	Estimate(from kernel.GeoLocation, to kernel.GeoLocation, at time.Time,
		weather *WeatherContext) (Estimate, error)
}

// HaversineEstimator estimates legs from great circle distance and a constant
// average speed, slowed down by the weather travel factor.
type HaversineEstimator struct {
	speedKmh float64
}

// NewHaversineEstimator creates a HaversineEstimator with the given average
// speed in km/h. Speed must be positive.
func NewHaversineEstimator(speedKmh float64) (*HaversineEstimator, error) {
	if speedKmh <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("speedKmh is invalid",
			fmt.Errorf("%f is not greater than 0", speedKmh))
	}

	return &HaversineEstimator{speedKmh: speedKmh}, nil
}

// Estimate returns the great circle distance between the endpoints and the
// travel time at the configured speed, multiplied by the weather factor.
// The departure time does not influence the estimate but is part of the
// contract so time-aware oracles can slot in behind the same interface.
func (e *HaversineEstimator) Estimate(from kernel.GeoLocation, to kernel.GeoLocation,
	_ time.Time, weather *WeatherContext) (Estimate, error) {
	distanceKm, err := from.DistanceTo(to)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	hours := distanceKm / e.speedKmh * weather.TravelFactor()

	return Estimate{
		DistanceKm: distanceKm,
		Duration:   time.Duration(hours * float64(time.Hour)),
	}, nil
}
