package stats

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/services"
)

func newStation(t *testing.T) *services.Station {
	t.Helper()
	station, err := services.NewStation(context.Background(), domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)
	return station
}

func TestView_LoadingState(t *testing.T) {
	v := NewView(nil, nil)

	assert.Nil(t, v.Stats())
	assert.Contains(t, v.View(), "Loading statistics...")
}

func TestView_NilStation(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), errNoStation)
	assert.Contains(t, v.View(), "station service not available")
}

func TestView_Init(t *testing.T) {
	station := newStation(t)
	ctx := context.Background()
	_, err := station.Cashbox().RegisterPassenger(ctx, "111111", "Ana", "Li")
	require.NoError(t, err)
	_, err = station.Cashbox().BuyTicket(ctx, 0, domain.DestinationNovosibirsk)
	require.NoError(t, err)
	_, err = station.Cashbox().BuyTicket(ctx, 0, domain.DestinationSaintPetersburg)
	require.NoError(t, err)

	v := NewView(nil, station)
	v.Update(v.Init()())

	require.NotNil(t, v.Stats())
	assert.Equal(t, 1, v.Stats().PassengerCount)
	assert.Equal(t, 2, v.Stats().TicketCount)
	assert.Equal(t, 4700.0, v.Stats().TotalRevenue)

	output := v.View()
	assert.Contains(t, output, "Tickets sold:          2")
	assert.Contains(t, output, "Tariffs set:           6 of 6")
	assert.Contains(t, output, "4700.00 RUB")
	assert.Contains(t, output, "Novosibirsk")
	assert.Contains(t, output, "3500.00 RUB")
}

func TestView_Reload(t *testing.T) {
	station := newStation(t)
	v := NewView(nil, station)
	v.Update(v.Init()())
	require.Equal(t, 0, v.Stats().PassengerCount)

	_, err := station.Cashbox().RegisterPassenger(context.Background(), "111111", "Ana", "Li")
	require.NoError(t, err)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 1, v.Stats().PassengerCount)
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(tea.WindowSizeMsg{Width: 90, Height: 40})

	assert.True(t, v.ready)
	assert.Equal(t, 90, v.width)
}
