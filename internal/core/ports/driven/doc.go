// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PassengerRegistry: Passenger records addressed by stable index
//   - TariffTable: Destination to price mapping
//   - TicketLedger: Append-only record of issued tickets
//   - ConfigStore: Application configuration
//
// A cashbox owns one set of the three record stores, bundled as CashboxStores.
// A StoresFactory opens a fresh, empty set so a station can be reset.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
