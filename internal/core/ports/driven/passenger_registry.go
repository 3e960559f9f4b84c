package driven

import (
	"context"

	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// PassengerRegistry stores passengers in registration order.
type PassengerRegistry interface {
	// Register stores a new passenger and assigns its ID.
	// Returns domain.ErrDuplicatePassport if the passport is already registered.
	Register(ctx context.Context, passenger domain.Passenger) (domain.Passenger, error)

	// Get returns the passenger at a 0-based index.
	// Returns domain.ErrIndexOutOfRange if index is outside [0, Count).
	Get(ctx context.Context, index int) (domain.Passenger, error)

	// List returns all passengers in registration order.
	List(ctx context.Context) ([]domain.Passenger, error)

	// Count returns the number of registered passengers.
	Count(ctx context.Context) (int, error)
}
