// Package weather provides the weather data source used to adjust travel
// time estimates. The static provider serves operator-maintained conditions
// per coarse map cell; regions without data simply plan unadjusted.
package weather

import (
	"context"
	"fmt"
	"sync"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/routing"
)

// cellDegrees is the grid resolution for condition lookups. A tenth of a
// degree is roughly 11 km, coarse enough that one report covers a district.
const cellDegrees = 10.0

// StaticProvider maps coarse coordinate cells to weather conditions.
// Safe for concurrent use.
type StaticProvider struct {
	mu    sync.RWMutex
	cells map[string]routing.WeatherContext
}

// NewStaticProvider creates an empty provider. Until conditions are set,
// every lookup reports no data.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		cells: make(map[string]routing.WeatherContext),
	}
}

// Set records the conditions for the cell containing the given location,
// replacing any previous report for that cell.
func (p *StaticProvider) Set(at kernel.GeoLocation, weather routing.WeatherContext) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cells[cellKey(at)] = weather
}

// Clear removes the report for the cell containing the given location.
func (p *StaticProvider) Clear(at kernel.GeoLocation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cells, cellKey(at))
}

// Current returns the conditions for the cell containing the location.
// A nil context with nil error means no data; callers plan unadjusted.
func (p *StaticProvider) Current(ctx context.Context,
	at kernel.GeoLocation) (*routing.WeatherContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	weather, ok := p.cells[cellKey(at)]
	if !ok {
		return nil, nil
	}

	return &weather, nil
}

func cellKey(at kernel.GeoLocation) string {
	lat := int(at.Lat() * cellDegrees)
	lng := int(at.Lng() * cellDegrees)
	return fmt.Sprintf("%d:%d", lat, lng)
}
