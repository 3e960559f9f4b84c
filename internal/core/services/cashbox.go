package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cashbox-cli/internal/logger"
)

// Ensure CashboxService implements the interface.
var _ driving.CashboxService = (*CashboxService)(nil)

// CashboxService orchestrates the passenger registry, tariff table and ticket ledger.
// Mutations hold an exclusive lock so a sale is atomic across all three stores.
type CashboxService struct {
	mu         sync.RWMutex
	passengers driven.PassengerRegistry
	tariffs    driven.TariffTable
	tickets    driven.TicketLedger
	pricing    domain.PricingSettings
	newID      func() string
}

// NewCashboxService creates a cashbox over the given stores.
func NewCashboxService(stores driven.CashboxStores, pricing domain.PricingSettings) *CashboxService {
	return &CashboxService{
		passengers: stores.Passengers,
		tariffs:    stores.Tariffs,
		tickets:    stores.Tickets,
		pricing:    pricing,
		newID:      func() string { return uuid.New().String() },
	}
}

// SetIDGenerator replaces the ticket ID generator.
func (s *CashboxService) SetIDGenerator(gen func() string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newID = gen
}

// SetPricing replaces the price bounds used by AddTariff.
// Existing tariffs and tickets are not revalidated.
func (s *CashboxService) SetPricing(pricing domain.PricingSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing = pricing
}

// Pricing returns the price bounds and currency the cashbox enforces.
func (s *CashboxService) Pricing() domain.PricingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricing
}

func (s *CashboxService) ready() error {
	if s.passengers == nil || s.tariffs == nil || s.tickets == nil {
		return domain.ErrNotImplemented
	}
	return nil
}

// AddTariff inserts or overwrites the price for a destination.
func (s *CashboxService) AddTariff(ctx context.Context, destination domain.Destination, price float64) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !destination.IsValid() {
		return fmt.Errorf("%w: unknown destination %d", domain.ErrInvalidInput, destination)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pricing.ValidatePrice(price); err != nil {
		return err
	}
	if err := s.tariffs.Set(ctx, destination, price); err != nil {
		return err
	}
	logger.Debug("Tariff set: %s = %s", destination, s.pricing.Format(price))
	return nil
}

// RegisterPassenger stores a new passenger.
func (s *CashboxService) RegisterPassenger(
	ctx context.Context,
	passport, firstName, lastName string,
) (domain.Passenger, error) {
	if err := s.ready(); err != nil {
		return domain.Passenger{}, err
	}
	if passport == "" || firstName == "" || lastName == "" {
		return domain.Passenger{}, fmt.Errorf("%w: passport and both names are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.passengers.Register(ctx, domain.Passenger{
		Passport:  passport,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		logger.Debug("Registration rejected: %v", err)
		return domain.Passenger{}, err
	}
	logger.Debug("Passenger registered: #%d %s", p.ID, p.FullName())
	return p, nil
}

// BuyTicket sells a ticket to the passenger at a 0-based index.
// The passenger is resolved before the tariff; nothing is issued if either fails.
func (s *CashboxService) BuyTicket(
	ctx context.Context,
	passengerIndex int,
	destination domain.Destination,
) (domain.Ticket, error) {
	if err := s.ready(); err != nil {
		return domain.Ticket{}, err
	}
	if !destination.IsValid() {
		return domain.Ticket{}, fmt.Errorf("%w: unknown destination %d", domain.ErrInvalidInput, destination)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Buy Ticket")

	passenger, err := s.passengers.Get(ctx, passengerIndex)
	if err != nil {
		logger.Debug("Sale rejected: %v", err)
		return domain.Ticket{}, err
	}

	price, err := s.tariffs.Get(ctx, destination)
	if err != nil {
		logger.Debug("Sale rejected: %v", err)
		return domain.Ticket{}, err
	}

	ticket, err := s.tickets.Issue(ctx, domain.Ticket{
		ID:          s.newID(),
		Destination: destination,
		Price:       price,
		PassengerID: passenger.ID,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("issue ticket: %w", err)
	}

	logger.Debug("Ticket #%d issued: %s to %s for %s",
		ticket.Number, passenger.FullName(), destination, s.pricing.Format(price))
	return ticket, nil
}

// PassengersByDestination lists the passenger of every ticket to a destination.
func (s *CashboxService) PassengersByDestination(
	ctx context.Context,
	destination domain.Destination,
) ([]domain.Passenger, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !destination.IsValid() {
		return nil, fmt.Errorf("%w: unknown destination %d", domain.ErrInvalidInput, destination)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Passenger
	for t := range s.tickets.ByDestination(ctx, destination) {
		p, err := s.passengers.Get(ctx, int(t.PassengerID))
		if err != nil {
			return nil, fmt.Errorf("ticket #%d: %w", t.Number, err)
		}
		result = append(result, p)
	}
	return result, nil
}

// TotalSpend sums the tickets bought by the passenger at a 0-based index.
func (s *CashboxService) TotalSpend(ctx context.Context, passengerIndex int) (domain.Spend, error) {
	if err := s.ready(); err != nil {
		return domain.Spend{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	passenger, err := s.passengers.Get(ctx, passengerIndex)
	if err != nil {
		return domain.Spend{}, err
	}

	spend := domain.Spend{Passenger: passenger}
	for t := range s.tickets.ByPassenger(ctx, passenger.ID) {
		spend.TicketCount++
		spend.Total += t.Price
	}
	return spend, nil
}

// Statistics returns aggregate counts and revenue.
func (s *CashboxService) Statistics(ctx context.Context) (domain.Statistics, error) {
	if err := s.ready(); err != nil {
		return domain.Statistics{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Statistics
	var err error
	if stats.PassengerCount, err = s.passengers.Count(ctx); err != nil {
		return domain.Statistics{}, err
	}
	if stats.TariffCount, err = s.tariffs.Count(ctx); err != nil {
		return domain.Statistics{}, err
	}

	tickets, err := s.tickets.All(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	// ByDestination[i] holds the destination with selector i+1.
	stats.ByDestination = make([]domain.DestinationStats, domain.DestinationCount)
	for i, d := range domain.AllDestinations() {
		stats.ByDestination[i].Destination = d
	}

	for _, t := range tickets {
		stats.TicketCount++
		stats.TotalRevenue += t.Price
		if t.Destination.IsValid() {
			ds := &stats.ByDestination[t.Destination.Selector()-1]
			ds.TicketCount++
			ds.Revenue += t.Price
		}
	}
	return stats, nil
}

// Passengers returns every passenger in registration order.
func (s *CashboxService) Passengers(ctx context.Context) ([]domain.Passenger, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.passengers.List(ctx)
}

// Tickets returns every ticket in issuance order.
func (s *CashboxService) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.tickets.All(ctx)
}

// Tariffs returns the tariff table in destination order.
func (s *CashboxService) Tariffs(ctx context.Context) ([]domain.Tariff, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.tariffs.All(ctx)
}
