package driven

import (
	"context"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// TariffTable maps destinations to their current price.
// A destination without an entry is a valid, reportable state.
type TariffTable interface {
	// Set inserts or overwrites the price for a destination.
	Set(ctx context.Context, destination domain.Destination, price float64) error

	// Get returns the price for a destination.
	// Returns domain.ErrTariffNotSet if no entry exists.
	Get(ctx context.Context, destination domain.Destination) (float64, error)

	// All returns the entries in destination enumeration order.
	All(ctx context.Context) ([]domain.Tariff, error)

	// Count returns the number of destinations with a price.
	Count(ctx context.Context) (int, error)
}
