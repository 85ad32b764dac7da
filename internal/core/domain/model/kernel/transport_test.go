package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportTypeFromString(t *testing.T) {
	t.Run("should parse known transport types", func(t *testing.T) {
		testCases := []struct {
			raw        string
			expected   kernel.TransportType
			capacity   float64
			efficiency int64
		}{
			{"foot", kernel.TransportFoot, 10, 2},
			{"bike", kernel.TransportBike, 15, 5},
			{"car", kernel.TransportCar, 50, 9},
		}

		for _, tc := range testCases {
			t.Run(tc.raw, func(t *testing.T) {
				transport, err := kernel.TransportTypeFromString(tc.raw)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, transport)
				assert.InDelta(t, tc.capacity, transport.Capacity(), 0)
				assert.Equal(t, tc.efficiency, transport.Efficiency())
				assert.Equal(t, tc.raw, transport.String())
			})
		}
	})

	t.Run("should reject unknown transport types", func(t *testing.T) {
		for _, raw := range []string{"", "truck", "Foot", "FOOT", "drone"} {
			_, err := kernel.TransportTypeFromString(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, kernel.ErrTransportTypeIsInvalid)
		}
	})
}

func TestTransportType_Validate(t *testing.T) {
	require.NoError(t, kernel.TransportFoot.Validate())
	require.NoError(t, kernel.TransportBike.Validate())
	require.NoError(t, kernel.TransportCar.Validate())
	require.Error(t, kernel.TransportType("scooter").Validate())
}
