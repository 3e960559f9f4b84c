package driven

// CashboxStores bundles the record stores owned by one cashbox.
type CashboxStores struct {
	Passengers PassengerRegistry
	Tariffs    TariffTable
	Tickets    TicketLedger
}

// StoresFactory opens a fresh, empty set of cashbox stores.
type StoresFactory func() CashboxStores
