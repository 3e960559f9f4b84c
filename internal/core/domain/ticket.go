package domain

// Ticket is an issued sale. Price is the tariff at the moment of sale and is
// never updated afterwards.
type Ticket struct {
	// ID is an opaque unique identifier assigned by the cashbox.
	ID string `json:"id"`
	// Number is the 1-based position of the ticket in the ledger.
	Number      int         `json:"number"`
	Destination Destination `json:"destination"`
	Price       float64     `json:"price"`
	PassengerID PassengerID `json:"passenger_id"`
}

// Tariff is the current price for a destination.
type Tariff struct {
	Destination Destination `json:"destination"`
	Price       float64     `json:"price"`
}
