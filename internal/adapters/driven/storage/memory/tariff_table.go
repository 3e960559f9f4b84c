package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
)

// Ensure TariffTable implements the interface.
var _ driven.TariffTable = (*TariffTable)(nil)

// TariffTable is an in-memory implementation of driven.TariffTable.
type TariffTable struct {
	mu     sync.RWMutex
	prices map[domain.Destination]float64
}

// NewTariffTable creates an empty tariff table.
func NewTariffTable() *TariffTable {
	return &TariffTable{
		prices: make(map[domain.Destination]float64),
	}
}

// Set inserts or overwrites the price for a destination.
// Range checks against configured bounds belong to the caller.
func (t *TariffTable) Set(_ context.Context, destination domain.Destination, price float64) error {
	if !destination.IsValid() {
		return fmt.Errorf("%w: unknown destination %d", domain.ErrInvalidInput, destination)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.prices[destination] = price
	return nil
}

// Get returns the price for a destination.
func (t *TariffTable) Get(_ context.Context, destination domain.Destination) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	price, ok := t.prices[destination]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrTariffNotSet, destination)
	}
	return price, nil
}

// All returns the entries in destination enumeration order.
func (t *TariffTable) All(_ context.Context) ([]domain.Tariff, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]domain.Tariff, 0, len(t.prices))
	for _, d := range domain.AllDestinations() {
		if price, ok := t.prices[d]; ok {
			result = append(result, domain.Tariff{Destination: d, Price: price})
		}
	}
	return result, nil
}

// Count returns the number of destinations with a price.
func (t *TariffTable) Count(_ context.Context) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.prices), nil
}
