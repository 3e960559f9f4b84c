package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

func writePassenger(w io.Writer, p domain.Passenger) {
	fmt.Fprintf(w, "Passport: %s\n", p.Passport)
	fmt.Fprintf(w, "Name: %s\n", p.FirstName)
	fmt.Fprintf(w, "Surname: %s\n", p.LastName)
}

// writePassengerList prints passengers with their 1-based selection numbers.
func writePassengerList(w io.Writer, passengers []domain.Passenger) {
	for i, p := range passengers {
		fmt.Fprintf(w, "%d. ", i+1)
		writePassenger(w, p)
		fmt.Fprintln(w, "---")
	}
}

func writeTicket(w io.Writer, t domain.Ticket, p domain.Passenger, pricing domain.PricingSettings) {
	fmt.Fprintf(w, "Destination: %s\n", t.Destination.Label())
	fmt.Fprintf(w, "Price: %s\n", pricing.Format(t.Price))
	fmt.Fprintf(w, "Passenger: %s\n", p.FullName())
}

// outcomeMessage turns a cashbox rejection into the line shown to the operator.
func outcomeMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicatePassport):
		return "Passenger with this passport already registered!"
	case errors.Is(err, domain.ErrTariffNotSet):
		return "Tariff for this destination is not set!"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "Passenger with this number does not exist!"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func formatPrice(t *domain.Tariff, pricing domain.PricingSettings) string {
	if t == nil {
		return "not set"
	}
	return pricing.Format(t.Price)
}

// tariffFor finds the tariff for d in a table listing.
func tariffFor(tariffs []domain.Tariff, d domain.Destination) *domain.Tariff {
	for i := range tariffs {
		if tariffs[i].Destination == d {
			return &tariffs[i]
		}
	}
	return nil
}
