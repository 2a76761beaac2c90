package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerifyDeliveryCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewVerifyDeliveryCommand(id, "4821", "recipient")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.ShipmentID())
	assert.Equal(t, "4821", cmd.Pin())
	assert.Equal(t, "recipient", cmd.VerifiedBy())
}

func TestNewVerifyDeliveryCommand_EmptyPin(t *testing.T) {
	_, err := commands.NewVerifyDeliveryCommand(kernel.NewUUID(), "", "recipient")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPinIsRequired)
}

func TestNewVerifyDeliveryCommand_EmptyVerifier(t *testing.T) {
	_, err := commands.NewVerifyDeliveryCommand(kernel.NewUUID(), "4821", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrVerifierIsRequired)
}

func TestNewVerifyDeliveryCommand_InvalidShipmentID(t *testing.T) {
	_, err := commands.NewVerifyDeliveryCommand(kernel.UUID{}, "4821", "recipient")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
