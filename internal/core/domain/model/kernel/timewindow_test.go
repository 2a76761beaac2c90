package kernel_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("creates_valid_window", func(t *testing.T) {
		window, err := kernel.NewTimeWindow(base, base.Add(4*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, base, window.Earliest())
		assert.Equal(t, base.Add(4*time.Hour), window.Latest())
		assert.Equal(t, 4*time.Hour, window.Duration())
		require.NoError(t, window.Validate())
	})

	t.Run("rejects_zero_earliest", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(time.Time{}, base)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_zero_latest", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(base, time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_inverted_bounds", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(base.Add(time.Hour), base)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_equal_bounds", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(base, base)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTimeWindow_Contains(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	window, _ := kernel.NewTimeWindow(base, base.Add(2*time.Hour))

	t.Run("inside", func(t *testing.T) {
		assert.True(t, window.Contains(base.Add(time.Hour)))
	})

	t.Run("bounds_are_inclusive", func(t *testing.T) {
		assert.True(t, window.Contains(base))
		assert.True(t, window.Contains(base.Add(2*time.Hour)))
	})

	t.Run("before_window", func(t *testing.T) {
		assert.False(t, window.Contains(base.Add(-time.Minute)))
	})

	t.Run("after_window", func(t *testing.T) {
		assert.False(t, window.Contains(base.Add(2*time.Hour+time.Minute)))
	})
}

func TestTimeWindow_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var window kernel.TimeWindow

		err := window.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
