package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportIncidentCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	shipmentID := kernel.NewUUID()

	cmd, err := commands.NewReportIncidentCommand(id, shipmentID,
		incident.TypeBreakdown, "engine will not start")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.IncidentID())
	assert.Equal(t, shipmentID, cmd.ShipmentID())
	assert.Equal(t, incident.TypeBreakdown, cmd.IncidentType())
	assert.Equal(t, "engine will not start", cmd.Description())
}

func TestNewReportIncidentCommand_EmptyDescription(t *testing.T) {
	_, err := commands.NewReportIncidentCommand(kernel.NewUUID(), kernel.NewUUID(),
		incident.TypeBreakdown, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDescriptionIsRequired)
}

func TestNewReportIncidentCommand_UnknownType(t *testing.T) {
	_, err := commands.NewReportIncidentCommand(kernel.NewUUID(), kernel.NewUUID(),
		incident.Type("meteor"), "unexpected impact")
	require.Error(t, err)
}

func TestNewReportIncidentCommand_InvalidShipmentID(t *testing.T) {
	_, err := commands.NewReportIncidentCommand(kernel.NewUUID(), kernel.UUID{},
		incident.TypeBreakdown, "engine will not start")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
