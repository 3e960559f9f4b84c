package domain

import "errors"

// Domain errors represent business logic failures.
// Every cashbox operation that returns one of these has left state unchanged.
var (
	// ErrDuplicatePassport indicates a passenger with the same passport is already registered.
	ErrDuplicatePassport = errors.New("passport already registered")

	// ErrTariffNotSet indicates no price has been set for a destination.
	ErrTariffNotSet = errors.New("tariff not set")

	// ErrIndexOutOfRange indicates a passenger selection outside the registry.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")
)
