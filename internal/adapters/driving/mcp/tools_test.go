package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/services"
)

func register(t *testing.T, server *Server, passport, first, last string) PassengerOutput {
	t.Helper()
	_, out, err := server.handleRegisterPassenger(context.Background(), nil, RegisterPassengerInput{
		Passport: passport, FirstName: first, LastName: last,
	})
	require.NoError(t, err)
	return out
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Destination
	}{
		{name: "key", input: "saint_petersburg", expected: domain.DestinationSaintPetersburg},
		{name: "city name", input: "Saint Petersburg", expected: domain.DestinationSaintPetersburg},
		{name: "menu number", input: "5", expected: domain.DestinationSochi},
		{name: "padded", input: "  moscow ", expected: domain.DestinationMoscow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDestination(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := parseDestination("Vladivostok")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("number out of range", func(t *testing.T) {
		_, err := parseDestination("7")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleRegisterPassenger(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and numbers passengers from 1", func(t *testing.T) {
		server, _ := newTestServer(t)

		first := register(t, server, "111111", "ana", "li")
		second := register(t, server, "222222", "Bo", "Chen")

		assert.Equal(t, 1, first.Number)
		assert.Equal(t, "Ana", first.FirstName)
		assert.Equal(t, "Li", first.LastName)
		assert.Equal(t, 2, second.Number)
	})

	t.Run("rejects duplicate passport", func(t *testing.T) {
		server, station := newTestServer(t)
		register(t, server, "111111", "Ana", "Li")

		_, _, err := server.handleRegisterPassenger(ctx, nil, RegisterPassengerInput{
			Passport: "111111", FirstName: "Bo", LastName: "Chen",
		})

		assert.ErrorIs(t, err, domain.ErrDuplicatePassport)
		passengers, err := station.Cashbox().Passengers(ctx)
		require.NoError(t, err)
		assert.Len(t, passengers, 1)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleRegisterPassenger(ctx, nil, RegisterPassengerInput{
			Passport: "12ab56", FirstName: "Ana", LastName: "Li",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleRegisterPassenger(ctx, nil, RegisterPassengerInput{
			Passport: "123456", FirstName: "A", LastName: "Li",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "first name")
	})
}

func TestServer_handleBuyTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("sells at the current tariff", func(t *testing.T) {
		server, _ := newTestServer(t)
		register(t, server, "111111", "Ana", "Li")

		_, out, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 1, Destination: "sochi"})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Number)
		assert.NotEmpty(t, out.ID)
		assert.Equal(t, "Sochi", out.Destination)
		assert.Equal(t, 2500.0, out.Price)
		assert.Equal(t, "RUB", out.Currency)
		assert.Equal(t, "111111", out.Passenger.Passport)
	})

	t.Run("unknown passenger", func(t *testing.T) {
		server, _ := newTestServer(t)
		register(t, server, "111111", "Ana", "Li")

		_, _, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 2, Destination: "sochi"})
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

		_, _, err = server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 0, Destination: "sochi"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("names the buyer from the registry listing", func(t *testing.T) {
		cashbox := &mockCashboxService{
			ticket: domain.Ticket{ID: "t-1", Number: 3, PassengerID: 1, Destination: domain.DestinationSochi, Price: 2500},
			passengers: []domain.Passenger{
				{ID: 0, Passport: "111111", FirstName: "Ana", LastName: "Li"},
				{ID: 1, Passport: "222222", FirstName: "Bo", LastName: "Chen"},
			},
		}
		server, err := NewServer(&Ports{Station: &mockStationService{cashbox: cashbox}})
		require.NoError(t, err)

		_, out, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 2, Destination: "sochi"})

		require.NoError(t, err)
		assert.Equal(t, "222222", out.Passenger.Passport)
		assert.Equal(t, "Bo", out.Passenger.FirstName)
		assert.Equal(t, 3, out.Number)
		assert.Zero(t, cashbox.spendCalls)
	})

	t.Run("tariff not set", func(t *testing.T) {
		settings := domain.DefaultStationSettings()
		settings.SeedDefaultTariffs = false
		station, err := services.NewStation(ctx, settings, memory.NewCashboxStores)
		require.NoError(t, err)
		server, err := NewServer(&Ports{Station: station})
		require.NoError(t, err)
		register(t, server, "111111", "Ana", "Li")

		_, _, err = server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 1, Destination: "moscow"})

		assert.ErrorIs(t, err, domain.ErrTariffNotSet)
		tickets, err := station.Cashbox().Tickets(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})
}

func TestServer_handleSetTariff(t *testing.T) {
	ctx := context.Background()

	t.Run("price change does not touch sold tickets", func(t *testing.T) {
		server, _ := newTestServer(t)
		register(t, server, "111111", "Ana", "Li")
		_, _, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 1, Destination: "Moscow"})
		require.NoError(t, err)

		_, tariffs, err := server.handleSetTariff(ctx, nil, SetTariffInput{Destination: "moscow", Price: 1800})
		require.NoError(t, err)
		require.Len(t, tariffs.Tariffs, domain.DestinationCount)
		require.NotNil(t, tariffs.Tariffs[0].Price)
		assert.Equal(t, 1800.0, *tariffs.Tariffs[0].Price)

		_, spend, err := server.handleTotalSpend(ctx, nil, PassengerNumberInput{PassengerNumber: 1})
		require.NoError(t, err)
		assert.Equal(t, 1500.0, spend.Total)
	})

	t.Run("rejects price outside bounds", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleSetTariff(ctx, nil, SetTariffInput{Destination: "moscow", Price: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleSetTariff(ctx, nil, SetTariffInput{Destination: "moscow", Price: 100001})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handlePassengersByDestination(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	register(t, server, "111111", "Ana", "Li")
	register(t, server, "222222", "Bo", "Chen")
	for _, n := range []int{1, 2, 1} {
		_, _, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: n, Destination: "sochi"})
		require.NoError(t, err)
	}

	_, out, err := server.handlePassengersByDestination(ctx, nil, DestinationInput{Destination: "sochi"})

	require.NoError(t, err)
	assert.Equal(t, "Sochi", out.Destination)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "111111", out.Passengers[0].Passport)
	assert.Equal(t, "222222", out.Passengers[1].Passport)
	assert.Equal(t, "111111", out.Passengers[2].Passport)

	_, empty, err := server.handlePassengersByDestination(ctx, nil, DestinationInput{Destination: "krasnodar"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Passengers)
}

func TestServer_handleStatistics(t *testing.T) {
	ctx := context.Background()
	server, _ := newTestServer(t)
	register(t, server, "111111", "Ana", "Li")
	_, _, err := server.handleBuyTicket(ctx, nil, BuyTicketInput{PassengerNumber: 1, Destination: "novosibirsk"})
	require.NoError(t, err)

	_, out, err := server.handleStatistics(ctx, nil, NoInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, out.PassengerCount)
	assert.Equal(t, 1, out.TicketCount)
	assert.Equal(t, 6, out.TariffCount)
	assert.Equal(t, 3500.0, out.TotalRevenue)
	require.Len(t, out.ByDestination, domain.DestinationCount)
	assert.Equal(t, "Novosibirsk", out.ByDestination[3].Destination)
	assert.Equal(t, 1, out.ByDestination[3].TicketCount)
}

func TestServer_handleResetStation(t *testing.T) {
	ctx := context.Background()
	server, station := newTestServer(t)
	register(t, server, "111111", "Ana", "Li")
	before := station.Cashbox()

	_, out, err := server.handleResetStation(ctx, nil, NoInput{})

	require.NoError(t, err)
	assert.True(t, out.Reset)
	assert.Equal(t, 6, out.Tariffs)
	assert.NotSame(t, before, station.Cashbox())
	passengers, err := station.Cashbox().Passengers(ctx)
	require.NoError(t, err)
	assert.Empty(t, passengers)
}

func TestServer_ToolErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store unavailable")
	server, err := NewServer(&Ports{Station: &mockStationService{
		cashbox: &mockCashboxService{err: storeErr},
		err:     storeErr,
	}})
	require.NoError(t, err)

	_, _, err = server.handleListTariffs(ctx, nil, NoInput{})
	assert.ErrorIs(t, err, storeErr)

	_, _, err = server.handleStatistics(ctx, nil, NoInput{})
	assert.ErrorIs(t, err, storeErr)

	_, _, err = server.handleTotalSpend(ctx, nil, PassengerNumberInput{PassengerNumber: 1})
	assert.ErrorIs(t, err, storeErr)

	_, _, err = server.handleResetStation(ctx, nil, NoInput{})
	assert.ErrorIs(t, err, storeErr)
}
