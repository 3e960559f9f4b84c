package driving

import (
	"context"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// CashboxService is the ticket desk of a station.
// Every method either fully succeeds or returns an error with no state changed.
type CashboxService interface {
	// AddTariff inserts or overwrites the price for a destination.
	AddTariff(ctx context.Context, destination domain.Destination, price float64) error

	// RegisterPassenger stores a new passenger.
	// Returns domain.ErrDuplicatePassport if the passport is taken.
	RegisterPassenger(ctx context.Context, passport, firstName, lastName string) (domain.Passenger, error)

	// BuyTicket sells a ticket to the passenger at a 0-based index.
	// Returns domain.ErrIndexOutOfRange or domain.ErrTariffNotSet without issuing anything.
	BuyTicket(ctx context.Context, passengerIndex int, destination domain.Destination) (domain.Ticket, error)

	// PassengersByDestination lists the passenger of every ticket to a destination,
	// in issuance order. A passenger appears once per matching ticket.
	PassengersByDestination(ctx context.Context, destination domain.Destination) ([]domain.Passenger, error)

	// TotalSpend sums the tickets bought by the passenger at a 0-based index.
	TotalSpend(ctx context.Context, passengerIndex int) (domain.Spend, error)

	// Statistics returns aggregate counts and revenue.
	Statistics(ctx context.Context) (domain.Statistics, error)

	// Passengers returns every passenger in registration order.
	Passengers(ctx context.Context) ([]domain.Passenger, error)

	// Tickets returns every ticket in issuance order.
	Tickets(ctx context.Context) ([]domain.Ticket, error)

	// Tariffs returns the tariff table in destination order.
	Tariffs(ctx context.Context) ([]domain.Tariff, error)

	// Pricing returns the price bounds and currency the cashbox enforces.
	Pricing() domain.PricingSettings
}
