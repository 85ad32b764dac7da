package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
)

func TestNewCreateCourierCommand(t *testing.T) {
	t.Run("should create command with valid data", func(t *testing.T) {
		cmd, err := commands.NewCreateCourierCommand(
			mustCourierID(t, 1),
			kernel.TransportBike,
			[]kernel.RegionID{mustRegionID(t, 1)},
			[]kernel.TimeWindow{mustWindow(t, "09:00-17:00")},
		)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, kernel.TransportBike, cmd.Transport())
	})

	t.Run("should allow empty regions and working hours", func(t *testing.T) {
		cmd, err := commands.NewCreateCourierCommand(mustCourierID(t, 1), kernel.TransportFoot, nil, nil)

		require.NoError(t, err)
		assert.Empty(t, cmd.Regions())
		assert.Empty(t, cmd.WorkingHours())
	})

	t.Run("should reject unknown transport", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(mustCourierID(t, 1), "scooter", nil, nil)

		assert.ErrorIs(t, err, kernel.ErrTransportTypeIsInvalid)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CreateCourierCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}
