package weather_test

import (
	"context"
	"testing"

	"logistics/internal/adapters/out/weather"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T, lat, lng float64) kernel.GeoLocation {
	t.Helper()
	location, err := kernel.NewGeoLocation(lat, lng)
	require.NoError(t, err)
	return location
}

func TestStaticProvider_NoDataReturnsNil(t *testing.T) {
	provider := weather.NewStaticProvider()

	conditions, err := provider.Current(t.Context(), testLocation(t, 12.97, 77.59))
	require.NoError(t, err)
	assert.Nil(t, conditions)
}

func TestStaticProvider_ReturnsConditionsForSameCell(t *testing.T) {
	provider := weather.NewStaticProvider()

	reported := routing.WeatherContext{Condition: routing.ConditionRain, Severity: 2}
	provider.Set(testLocation(t, 12.97, 77.59), reported)

	// A nearby point falls in the same tenth-of-a-degree cell.
	conditions, err := provider.Current(t.Context(), testLocation(t, 12.93, 77.51))
	require.NoError(t, err)
	require.NotNil(t, conditions)
	assert.Equal(t, reported, *conditions)
}

func TestStaticProvider_DistantCellHasNoData(t *testing.T) {
	provider := weather.NewStaticProvider()
	provider.Set(testLocation(t, 12.97, 77.59), routing.WeatherContext{Condition: routing.ConditionRain, Severity: 2})

	conditions, err := provider.Current(t.Context(), testLocation(t, 13.25, 77.59))
	require.NoError(t, err)
	assert.Nil(t, conditions)
}

func TestStaticProvider_ClearRemovesConditions(t *testing.T) {
	provider := weather.NewStaticProvider()
	at := testLocation(t, 12.97, 77.59)
	provider.Set(at, routing.WeatherContext{Condition: routing.ConditionSnow, Severity: 3})
	provider.Clear(at)

	conditions, err := provider.Current(t.Context(), at)
	require.NoError(t, err)
	assert.Nil(t, conditions)
}

func TestStaticProvider_CancelledContext(t *testing.T) {
	provider := weather.NewStaticProvider()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := provider.Current(ctx, testLocation(t, 12.97, 77.59))
	require.Error(t, err)
}
