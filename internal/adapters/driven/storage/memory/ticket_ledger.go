package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
)

// Ensure TicketLedger implements the interface.
var _ driven.TicketLedger = (*TicketLedger)(nil)

// TicketLedger is an in-memory, append-only implementation of driven.TicketLedger.
type TicketLedger struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketLedger creates an empty ledger.
func NewTicketLedger() *TicketLedger {
	return &TicketLedger{}
}

// Issue appends a ticket and assigns its ledger Number.
func (l *TicketLedger) Issue(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	if !ticket.Destination.IsValid() {
		return domain.Ticket{}, fmt.Errorf("%w: unknown destination %d", domain.ErrInvalidInput, ticket.Destination)
	}
	if ticket.Price <= 0 {
		return domain.Ticket{}, fmt.Errorf("%w: ticket price must be positive", domain.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ticket.Number = len(l.tickets) + 1
	l.tickets = append(l.tickets, ticket)
	return ticket, nil
}

// All returns every ticket in issuance order.
func (l *TicketLedger) All(_ context.Context) ([]domain.Ticket, error) {
	return l.snapshot(), nil
}

// Count returns the number of issued tickets.
func (l *TicketLedger) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tickets), nil
}

// ByDestination yields tickets for a destination in issuance order.
func (l *TicketLedger) ByDestination(_ context.Context, destination domain.Destination) iter.Seq[domain.Ticket] {
	return l.filter(func(t domain.Ticket) bool {
		return t.Destination == destination
	})
}

// ByPassenger yields tickets sold to one stored passenger in issuance order.
func (l *TicketLedger) ByPassenger(_ context.Context, passenger domain.PassengerID) iter.Seq[domain.Ticket] {
	return l.filter(func(t domain.Ticket) bool {
		return t.PassengerID == passenger
	})
}

// filter returns a sequence that snapshots the ledger each time it is ranged over,
// so a consumer may issue tickets mid-iteration without deadlocking.
func (l *TicketLedger) filter(match func(domain.Ticket) bool) iter.Seq[domain.Ticket] {
	return func(yield func(domain.Ticket) bool) {
		for _, t := range l.snapshot() {
			if !match(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (l *TicketLedger) snapshot() []domain.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.tickets)
}
