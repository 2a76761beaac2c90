package incident_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportedAt = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

func createTestIncident(t *testing.T, incidentType incident.Type) *incident.Incident {
	t.Helper()
	i, err := incident.NewIncident(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		incidentType, "reported by driver", reportedAt)
	require.NoError(t, err)
	return i
}

func TestNewIncident(t *testing.T) {
	t.Run("creates_open_incident", func(t *testing.T) {
		i := createTestIncident(t, incident.TypeBreakdown)

		assert.Equal(t, incident.StatusOpen, i.Status())
		assert.Equal(t, reportedAt, i.ReportedAt())
		assert.True(t, i.ResolvedAt().IsZero())
		require.NoError(t, i.Validate())
	})

	t.Run("derives_guidance_from_type", func(t *testing.T) {
		cases := []struct {
			incidentType incident.Type
			severity     incident.Severity
			delayMinutes int
		}{
			{incident.TypeBreakdown, incident.SeverityHigh, 180},
			{incident.TypePuncture, incident.SeverityLow, 45},
			{incident.TypeAccident, incident.SeverityHigh, 240},
			{incident.TypeWeatherDelay, incident.SeverityMedium, 90},
			{incident.TypeOther, incident.SeverityMedium, 60},
		}

		for _, tc := range cases {
			t.Run(string(tc.incidentType), func(t *testing.T) {
				i := createTestIncident(t, tc.incidentType)

				assert.Equal(t, tc.severity, i.Severity())
				assert.Equal(t, tc.delayMinutes, i.DelayMinutes())
				assert.NotEmpty(t, i.RecoverySteps())
			})
		}
	})

	t.Run("same_type_yields_same_guidance", func(t *testing.T) {
		a := createTestIncident(t, incident.TypeWeatherDelay)
		b := createTestIncident(t, incident.TypeWeatherDelay)

		assert.Equal(t, a.Severity(), b.Severity())
		assert.Equal(t, a.DelayMinutes(), b.DelayMinutes())
		assert.Equal(t, a.RecoverySteps(), b.RecoverySteps())
	})

	t.Run("rejects_unknown_type", func(t *testing.T) {
		_, err := incident.NewIncident(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			incident.Type("alien_abduction"), "description", reportedAt)

		require.Error(t, err)
	})

	t.Run("rejects_empty_description", func(t *testing.T) {
		_, err := incident.NewIncident(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			incident.TypeOther, "", reportedAt)

		require.Error(t, err)
	})
}

func TestIncident_Resolve(t *testing.T) {
	t.Run("resolves_open_incident", func(t *testing.T) {
		i := createTestIncident(t, incident.TypePuncture)
		resolvedAt := reportedAt.Add(time.Hour)

		require.NoError(t, i.Resolve(resolvedAt))

		assert.Equal(t, incident.StatusResolved, i.Status())
		assert.Equal(t, resolvedAt, i.ResolvedAt())
	})

	t.Run("double_resolve_is_an_error", func(t *testing.T) {
		i := createTestIncident(t, incident.TypePuncture)
		require.NoError(t, i.Resolve(reportedAt.Add(time.Hour)))

		err := i.Resolve(reportedAt.Add(2 * time.Hour))

		require.ErrorIs(t, err, incident.ErrAlreadyResolved)
		assert.Equal(t, reportedAt.Add(time.Hour), i.ResolvedAt())
	})
}

func TestRestoreIncident(t *testing.T) {
	t.Run("restores_resolved_incident", func(t *testing.T) {
		resolvedAt := reportedAt.Add(time.Hour)

		i, err := incident.RestoreIncident(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			incident.TypeBreakdown, "engine seized", incident.SeverityHigh, 180,
			[]string{"dispatch mechanic"}, incident.StatusResolved, reportedAt, resolvedAt)

		require.NoError(t, err)
		assert.Equal(t, incident.StatusResolved, i.Status())
		assert.Equal(t, []string{"dispatch mechanic"}, i.RecoverySteps())
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := incident.RestoreIncident(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			incident.TypeBreakdown, "engine seized", incident.SeverityHigh, 180,
			nil, incident.Status("pending"), reportedAt, time.Time{})

		require.Error(t, err)
	})
}
