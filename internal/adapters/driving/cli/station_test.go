package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

func TestStationInfoCmd(t *testing.T) {
	station := setupTestServices(t)
	ctx := context.Background()
	_, err := station.Cashbox().RegisterPassenger(ctx, "111111", "Ana", "Li")
	require.NoError(t, err)
	_, err = station.Cashbox().BuyTicket(ctx, 0, domain.DestinationEkaterinburg)
	require.NoError(t, err)

	output, err := execute(t, "", "station", "info")

	require.NoError(t, err)
	assert.Contains(t, output, "Name: Main Station")
	assert.Contains(t, output, "Address: City Center")
	assert.Contains(t, output, "Cashboxes: 1")
	assert.Contains(t, output, "Passengers: 1")
	assert.Contains(t, output, "Tickets sold: 1")
	assert.Contains(t, output, "Revenue: 2000.00 RUB")
}

func TestStationCmd_HasNoReset(t *testing.T) {
	for _, sub := range stationCmd.Commands() {
		assert.NotEqual(t, "reset", sub.Name())
	}
}

func TestStationInfoCmd_JSONOutput(t *testing.T) {
	setupTestServices(t)

	output, err := execute(t, "", "station", "info", "--json")

	require.NoError(t, err)
	assert.Contains(t, output, `"name": "Main Station"`)
	assert.Contains(t, output, `"cashbox_count": 1`)
	assert.Contains(t, output, `"by_destination"`)
}

func TestStationCmd_ServiceNotConfigured(t *testing.T) {
	oldStation := stationService
	stationService = nil
	defer func() { stationService = oldStation }()

	_, err := execute(t, "", "station", "info")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "station service not configured")
}
