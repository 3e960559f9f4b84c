package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// TicketLedger is an append-only record of issued tickets.
type TicketLedger interface {
	// Issue appends a ticket, assigns its ledger Number and returns the stored copy.
	Issue(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)

	// All returns every ticket in issuance order.
	All(ctx context.Context) ([]domain.Ticket, error)

	// Count returns the number of issued tickets.
	Count(ctx context.Context) (int, error)

	// ByDestination yields tickets for a destination in issuance order.
	// Each range over the sequence filters the ledger again.
	ByDestination(ctx context.Context, destination domain.Destination) iter.Seq[domain.Ticket]

	// ByPassenger yields tickets sold to one stored passenger in issuance order.
	// Each range over the sequence filters the ledger again.
	ByPassenger(ctx context.Context, passenger domain.PassengerID) iter.Seq[domain.Ticket]
}
