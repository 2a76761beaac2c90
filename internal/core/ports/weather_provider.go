package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/routing"
)

// WeatherProvider answers the weather context for a location.
//
// A nil context with a nil error means no data for the location; planning
// proceeds unadjusted. Providers degrade rather than fail: errors are
// reserved for misuse, not missing data.
type WeatherProvider interface {
	Current(ctx context.Context, at kernel.GeoLocation) (*routing.WeatherContext, error)
}
