package tickets

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

// newStation opens a station with two passengers and three sold tickets:
// Ana to Moscow, Boris to Sochi, Ana to Moscow again.
func newStation(t *testing.T) *services.Station {
	t.Helper()
	ctx := context.Background()
	station, err := services.NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	cashbox := station.Cashbox()
	_, err = cashbox.RegisterPassenger(ctx, "111111", "Ana", "Li")
	require.NoError(t, err)
	_, err = cashbox.RegisterPassenger(ctx, "222222", "Boris", "Kim")
	require.NoError(t, err)
	for _, sale := range []struct {
		index int
		dest  domain.Destination
	}{
		{0, domain.DestinationMoscow},
		{1, domain.DestinationSochi},
		{0, domain.DestinationMoscow},
	} {
		_, err = cashbox.BuyTicket(ctx, sale.index, sale.dest)
		require.NoError(t, err)
	}
	return station
}

func loaded(t *testing.T, station *services.Station) *View {
	t.Helper()
	v := NewView(nil, station)
	v.SetDimensions(100, 30)
	v.Update(v.Init()())
	return v
}

func key(v *View, s string) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func TestView_Init_LoadsLedger(t *testing.T) {
	v := loaded(t, newStation(t))

	require.Len(t, v.Tickets(), 3)
	assert.Equal(t, 3, v.Tickets()[2].Number)

	output := v.View()
	assert.Contains(t, output, "Tickets")
	assert.Contains(t, output, "Boris Kim")
	assert.Contains(t, output, "2500.00 RUB")
}

func TestView_Init_NilStation(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), errNoStation)
}

func TestView_Empty(t *testing.T) {
	station, err := services.NewStation(context.Background(), domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)
	v := loaded(t, station)

	assert.Contains(t, v.View(), "No tickets sold.")
}

func TestView_FilterByDestination(t *testing.T) {
	v := loaded(t, newStation(t))

	cmd := key(v, "1")
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, domain.DestinationMoscow, v.Filter())
	require.Len(t, v.Filtered(), 2, "one entry per matching ticket")
	assert.Equal(t, "Ana Li", v.Filtered()[0].FullName())
	assert.Equal(t, "Ana Li", v.Filtered()[1].FullName())
	assert.Contains(t, v.View(), "Passengers to Moscow")
}

func TestView_FilterWithoutTickets(t *testing.T) {
	v := loaded(t, newStation(t))

	v.Update(key(v, "3")())

	assert.Equal(t, domain.DestinationEkaterinburg, v.Filter())
	assert.Empty(t, v.Filtered())
	assert.Contains(t, v.View(), "No passengers for this destination.")
}

func TestView_ClearFilter(t *testing.T) {
	v := loaded(t, newStation(t))
	v.Update(key(v, "5")())
	require.Equal(t, domain.DestinationSochi, v.Filter())

	assert.Nil(t, key(v, "0"))

	assert.False(t, v.Filter().IsValid())
	assert.Contains(t, v.View(), "Tickets")
}

func TestView_Reload(t *testing.T) {
	station := newStation(t)
	v := loaded(t, station)
	_, err := station.Cashbox().BuyTicket(context.Background(), 1, domain.DestinationKrasnodar)
	require.NoError(t, err)

	cmd := key(v, "r")
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Len(t, v.Tickets(), 4)
}

func TestView_ScrollBounds(t *testing.T) {
	v := loaded(t, newStation(t))

	for range 10 {
		key(v, "j")
	}
	assert.Equal(t, 2, v.offset)
	for range 10 {
		key(v, "k")
	}
	assert.Equal(t, 0, v.offset)
}

func TestVisible(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{2, 3}, visible(rows, 1, 2))
	assert.Equal(t, []int{4, 5}, visible(rows, 3, 10))
	assert.Nil(t, visible(rows, 5, 2))
}

func TestView_Reset(t *testing.T) {
	v := loaded(t, newStation(t))
	v.Update(key(v, "1")())

	v.Reset()

	assert.False(t, v.Filter().IsValid())
	assert.Empty(t, v.Filtered())
}
