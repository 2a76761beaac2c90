package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanLogisticsCommand_ValidInput(t *testing.T) {
	departAt := testBaseTime()
	orderIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	cmd, err := commands.NewPlanLogisticsCommand(departAt, orderIDs)
	require.NoError(t, err)
	assert.Equal(t, departAt, cmd.DepartAt())
	assert.Equal(t, orderIDs, cmd.OrderIDs())
}

func TestNewPlanLogisticsCommand_EmptyFilterPlansEverything(t *testing.T) {
	cmd, err := commands.NewPlanLogisticsCommand(testBaseTime(), nil)
	require.NoError(t, err)
	assert.Empty(t, cmd.OrderIDs())
}

func TestNewPlanLogisticsCommand_ZeroDepartAt(t *testing.T) {
	_, err := commands.NewPlanLogisticsCommand(time.Time{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDepartAtIsRequired)
}

func TestPlanLogisticsCommand_OrderIDsIsACopy(t *testing.T) {
	orderIDs := []kernel.UUID{kernel.NewUUID()}
	cmd, err := commands.NewPlanLogisticsCommand(testBaseTime(), orderIDs)
	require.NoError(t, err)

	returned := cmd.OrderIDs()
	returned[0] = kernel.NewUUID()

	assert.Equal(t, orderIDs, cmd.OrderIDs())
}
