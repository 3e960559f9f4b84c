package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

func TestNewStation_SeedsDefaultTariffs(t *testing.T) {
	ctx := context.Background()
	station, err := NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	tariffs, err := station.Cashbox().Tariffs(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStationSettings().DefaultTariffs, tariffs)
}

func TestNewStation_WithoutSeeding(t *testing.T) {
	ctx := context.Background()
	settings := domain.DefaultStationSettings()
	settings.SeedDefaultTariffs = false

	station, err := NewStation(ctx, settings, memory.NewCashboxStores)
	require.NoError(t, err)

	tariffs, err := station.Cashbox().Tariffs(ctx)
	require.NoError(t, err)
	assert.Empty(t, tariffs)
}

func TestNewStation_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewStation(ctx, domain.DefaultStationSettings(), nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	bad := domain.DefaultStationSettings()
	bad.Name = ""
	_, err = NewStation(ctx, bad, memory.NewCashboxStores)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStation_Cashbox_SameInstance(t *testing.T) {
	station, err := NewStation(context.Background(), domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	a := station.Cashbox()
	b := station.Cashbox()
	assert.Same(t, a, b)
}

func TestStation_Reset(t *testing.T) {
	ctx := context.Background()
	station, err := NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	before := station.Cashbox()
	_, err = before.RegisterPassenger(ctx, "111111", "Ana", "Li")
	require.NoError(t, err)
	_, err = before.BuyTicket(ctx, 0, domain.DestinationMoscow)
	require.NoError(t, err)

	require.NoError(t, station.Reset(ctx))

	after := station.Cashbox()
	assert.NotSame(t, before, after)
	assert.Same(t, after, station.Cashbox())

	stats, err := after.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PassengerCount)
	assert.Equal(t, 0, stats.TicketCount)
	assert.Equal(t, domain.DestinationCount, stats.TariffCount)

	// The same passport can be registered again on the fresh cashbox.
	_, err = after.RegisterPassenger(ctx, "111111", "Ana", "Li")
	assert.NoError(t, err)
}

func TestStation_Info(t *testing.T) {
	ctx := context.Background()
	station, err := NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	_, err = station.Cashbox().RegisterPassenger(ctx, "111111", "Ana", "Li")
	require.NoError(t, err)
	_, err = station.Cashbox().BuyTicket(ctx, 0, domain.DestinationSochi)
	require.NoError(t, err)

	info, err := station.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Main Station", info.Name)
	assert.Equal(t, "City Center", info.Address)
	assert.Equal(t, "RUB", info.Currency)
	assert.Equal(t, 1, info.CashboxCount)
	assert.Equal(t, 1, info.Summary.TicketCount)
	assert.Equal(t, 2500.0, info.Summary.TotalRevenue)
}

func TestStation_ApplySettings(t *testing.T) {
	ctx := context.Background()
	station, err := NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)

	updated := domain.DefaultStationSettings()
	updated.Name = "Renamed"
	updated.Pricing.MaxPrice = 200000
	updated.DefaultTariffs[0].Price = 150000
	require.NoError(t, station.ApplySettings(updated))

	assert.Equal(t, "Renamed", station.Settings().Name)
	assert.NoError(t, station.Cashbox().AddTariff(ctx, domain.DestinationMoscow, 150000))

	// Default tariffs take effect on reset.
	price := func() float64 {
		tariffs, err := station.Cashbox().Tariffs(ctx)
		require.NoError(t, err)
		return tariffs[0].Price
	}
	require.NoError(t, station.Reset(ctx))
	assert.Equal(t, 150000.0, price())

	bad := updated
	bad.Pricing.Currency = ""
	assert.ErrorIs(t, station.ApplySettings(bad), domain.ErrInvalidInput)
	assert.Equal(t, "Renamed", station.Settings().Name)
}

func TestStation_NonFiniteBoundsKeepPricesBounded(t *testing.T) {
	ctx := context.Background()

	for _, bound := range []float64{math.NaN(), math.Inf(1)} {
		settings := domain.DefaultStationSettings()
		settings.Pricing.MaxPrice = bound
		_, err := NewStation(ctx, settings, memory.NewCashboxStores)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		station, err := NewStation(ctx, domain.DefaultStationSettings(), memory.NewCashboxStores)
		require.NoError(t, err)
		assert.ErrorIs(t, station.ApplySettings(settings), domain.ErrInvalidInput)
		assert.ErrorIs(t, station.Cashbox().AddTariff(ctx, domain.DestinationSochi, 1e300), domain.ErrInvalidInput)
	}
}
