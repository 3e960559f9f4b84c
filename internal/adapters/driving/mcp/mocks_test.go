package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/core/services"
)

// newTestServer builds a server over a real station with the default tariffs.
func newTestServer(t *testing.T) (*Server, *services.Station) {
	t.Helper()
	station, err := services.NewStation(context.Background(), domain.DefaultStationSettings(), memory.NewCashboxStores)
	require.NoError(t, err)
	server, err := NewServer(&Ports{Station: station})
	require.NoError(t, err)
	return server, station
}

// mockStationService is a mock implementation of driving.StationService.
type mockStationService struct {
	cashbox driving.CashboxService
	err     error
}

func (m *mockStationService) Cashbox() driving.CashboxService {
	return m.cashbox
}

func (m *mockStationService) Info(_ context.Context) (domain.StationInfo, error) {
	return domain.StationInfo{}, m.err
}

func (m *mockStationService) Reset(_ context.Context) error {
	return m.err
}

// mockCashboxService is a mock implementation of driving.CashboxService
// that fails every call with err, or returns the canned ticket and passengers.
type mockCashboxService struct {
	err        error
	ticket     domain.Ticket
	passengers []domain.Passenger
	spendCalls int
}

func (m *mockCashboxService) AddTariff(_ context.Context, _ domain.Destination, _ float64) error {
	return m.err
}

func (m *mockCashboxService) RegisterPassenger(_ context.Context, _, _, _ string) (domain.Passenger, error) {
	return domain.Passenger{}, m.err
}

func (m *mockCashboxService) BuyTicket(_ context.Context, _ int, _ domain.Destination) (domain.Ticket, error) {
	return m.ticket, m.err
}

func (m *mockCashboxService) PassengersByDestination(
	_ context.Context,
	_ domain.Destination,
) ([]domain.Passenger, error) {
	return nil, m.err
}

func (m *mockCashboxService) TotalSpend(_ context.Context, _ int) (domain.Spend, error) {
	m.spendCalls++
	return domain.Spend{}, m.err
}

func (m *mockCashboxService) Statistics(_ context.Context) (domain.Statistics, error) {
	return domain.Statistics{}, m.err
}

func (m *mockCashboxService) Passengers(_ context.Context) ([]domain.Passenger, error) {
	return m.passengers, m.err
}

func (m *mockCashboxService) Tickets(_ context.Context) ([]domain.Ticket, error) {
	return nil, m.err
}

func (m *mockCashboxService) Tariffs(_ context.Context) ([]domain.Tariff, error) {
	return nil, m.err
}

func (m *mockCashboxService) Pricing() domain.PricingSettings {
	return domain.DefaultStationSettings().Pricing
}
