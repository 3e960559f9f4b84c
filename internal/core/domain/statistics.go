package domain

// Spend summarises the tickets bought by one passenger.
type Spend struct {
	Passenger   Passenger `json:"passenger"`
	TicketCount int       `json:"ticket_count"`
	Total       float64   `json:"total"`
}

// DestinationStats is the per-destination slice of cashbox statistics.
type DestinationStats struct {
	Destination Destination `json:"destination"`
	TicketCount int         `json:"ticket_count"`
	Revenue     float64     `json:"revenue"`
}

// Statistics is an aggregate snapshot of a cashbox.
type Statistics struct {
	PassengerCount int     `json:"passenger_count"`
	TicketCount    int     `json:"ticket_count"`
	TariffCount    int     `json:"tariff_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	// ByDestination holds one entry per destination in enumeration order.
	ByDestination []DestinationStats `json:"by_destination"`
}

// StationInfo describes the station a cashbox belongs to.
type StationInfo struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Currency     string     `json:"currency"`
	CashboxCount int        `json:"cashbox_count"`
	Summary      Statistics `json:"summary"`
}
