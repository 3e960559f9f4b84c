package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

func issue(t *testing.T, ledger *TicketLedger, d domain.Destination, price float64, p domain.PassengerID) domain.Ticket {
	t.Helper()
	ticket, err := ledger.Issue(context.Background(), domain.Ticket{Destination: d, Price: price, PassengerID: p})
	require.NoError(t, err)
	return ticket
}

func collect(seq func(func(domain.Ticket) bool)) []int {
	var numbers []int
	for t := range seq {
		numbers = append(numbers, t.Number)
	}
	return numbers
}

func TestTicketLedger_Issue_AssignsNumbers(t *testing.T) {
	ledger := NewTicketLedger()

	first := issue(t, ledger, domain.DestinationMoscow, 1500, 0)
	second := issue(t, ledger, domain.DestinationMoscow, 1500, 0)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)

	count, err := ledger.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTicketLedger_Issue_InvalidInput(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()

	_, err := ledger.Issue(ctx, domain.Ticket{Destination: 0, Price: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.Issue(ctx, domain.Ticket{Destination: domain.DestinationSochi, Price: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	count, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTicketLedger_All_IssuanceOrder(t *testing.T) {
	ledger := NewTicketLedger()
	issue(t, ledger, domain.DestinationSochi, 2500, 1)
	issue(t, ledger, domain.DestinationMoscow, 1500, 0)

	all, err := ledger.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.DestinationSochi, all[0].Destination)
	assert.Equal(t, domain.DestinationMoscow, all[1].Destination)
}

func TestTicketLedger_ByDestination(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()
	issue(t, ledger, domain.DestinationMoscow, 1500, 0)
	issue(t, ledger, domain.DestinationSochi, 2500, 1)
	issue(t, ledger, domain.DestinationMoscow, 1500, 1)

	assert.Equal(t, []int{1, 3}, collect(ledger.ByDestination(ctx, domain.DestinationMoscow)))
	assert.Equal(t, []int{2}, collect(ledger.ByDestination(ctx, domain.DestinationSochi)))
	assert.Empty(t, collect(ledger.ByDestination(ctx, domain.DestinationKrasnodar)))
}

func TestTicketLedger_ByPassenger(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()
	issue(t, ledger, domain.DestinationMoscow, 1500, 0)
	issue(t, ledger, domain.DestinationSochi, 2500, 1)
	issue(t, ledger, domain.DestinationSochi, 2500, 0)

	assert.Equal(t, []int{1, 3}, collect(ledger.ByPassenger(ctx, 0)))
	assert.Equal(t, []int{2}, collect(ledger.ByPassenger(ctx, 1)))
	assert.Empty(t, collect(ledger.ByPassenger(ctx, 2)))
}

func TestTicketLedger_Sequences_AreRestartable(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()
	issue(t, ledger, domain.DestinationMoscow, 1500, 0)

	seq := ledger.ByDestination(ctx, domain.DestinationMoscow)
	assert.Equal(t, []int{1}, collect(seq))

	// A later range sees tickets issued after the sequence was created.
	issue(t, ledger, domain.DestinationMoscow, 1500, 0)
	assert.Equal(t, []int{1, 2}, collect(seq))
}

func TestTicketLedger_Sequences_StopEarly(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		issue(t, ledger, domain.DestinationSochi, 100, 0)
	}

	seen := 0
	for range ledger.ByPassenger(ctx, 0) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestTicketLedger_IssueDuringIteration(t *testing.T) {
	ledger := NewTicketLedger()
	ctx := context.Background()
	issue(t, ledger, domain.DestinationSochi, 100, 0)

	for range ledger.ByDestination(ctx, domain.DestinationSochi) {
		issue(t, ledger, domain.DestinationSochi, 100, 0)
	}

	count, err := ledger.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewCashboxStores(t *testing.T) {
	stores := NewCashboxStores()
	require.NotNil(t, stores.Passengers)
	require.NotNil(t, stores.Tariffs)
	require.NotNil(t, stores.Tickets)

	// Each call opens independent stores.
	other := NewCashboxStores()
	_, err := stores.Passengers.Register(context.Background(), domain.Passenger{Passport: "111111"})
	require.NoError(t, err)
	count, err := other.Passengers.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
