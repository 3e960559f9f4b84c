package memory

import "github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"

// Ensure NewCashboxStores satisfies the factory type.
var _ driven.StoresFactory = NewCashboxStores

// NewCashboxStores opens an empty in-memory registry, tariff table and ledger.
func NewCashboxStores() driven.CashboxStores {
	return driven.CashboxStores{
		Passengers: NewPassengerRegistry(),
		Tariffs:    NewTariffTable(),
		Tickets:    NewTicketLedger(),
	}
}
