package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driven"
)

// Ensure PassengerRegistry implements the interface.
var _ driven.PassengerRegistry = (*PassengerRegistry)(nil)

// PassengerRegistry is an in-memory implementation of driven.PassengerRegistry.
// Passengers live in a growable slice; a passenger's ID is its slice index.
type PassengerRegistry struct {
	mu         sync.RWMutex
	passengers []domain.Passenger
	byPassport map[string]domain.PassengerID
}

// NewPassengerRegistry creates an empty registry.
func NewPassengerRegistry() *PassengerRegistry {
	return &PassengerRegistry{
		byPassport: make(map[string]domain.PassengerID),
	}
}

// Register stores a new passenger and assigns its ID.
func (r *PassengerRegistry) Register(_ context.Context, passenger domain.Passenger) (domain.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byPassport[passenger.Passport]; exists {
		return domain.Passenger{}, fmt.Errorf("%w: %s", domain.ErrDuplicatePassport, passenger.Passport)
	}

	passenger.ID = domain.PassengerID(len(r.passengers))
	r.passengers = append(r.passengers, passenger)
	r.byPassport[passenger.Passport] = passenger.ID
	return passenger, nil
}

// Get returns the passenger at a 0-based index.
func (r *PassengerRegistry) Get(_ context.Context, index int) (domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.passengers) {
		return domain.Passenger{}, fmt.Errorf("%w: passenger %d of %d", domain.ErrIndexOutOfRange, index, len(r.passengers))
	}
	return r.passengers[index], nil
}

// List returns all passengers in registration order.
func (r *PassengerRegistry) List(_ context.Context) ([]domain.Passenger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.passengers), nil
}

// Count returns the number of registered passengers.
func (r *PassengerRegistry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.passengers), nil
}
