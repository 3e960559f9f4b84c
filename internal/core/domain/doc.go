// Package domain defines the core business entities for the station cashbox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Destination: One of six fixed routes, with a single label table
//   - Passenger: A registered traveller, addressed by a stable PassengerID
//   - Tariff: The current price for a destination
//   - Ticket: An issued sale carrying a price snapshot
//   - Statistics, Spend: Read-only aggregates
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
