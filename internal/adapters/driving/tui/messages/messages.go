// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cashbox-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewPassengers lists passengers and sells tickets.
	ViewPassengers
	// ViewTariffs shows and edits the tariff table.
	ViewTariffs
	// ViewTickets lists issued tickets.
	ViewTickets
	// ViewStats shows revenue and counts.
	ViewStats
	// ViewStation shows station details and offers a reset.
	ViewStation
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPassengers:
		return "passengers"
	case ViewTariffs:
		return "tariffs"
	case ViewTickets:
		return "tickets"
	case ViewStats:
		return "stats"
	case ViewStation:
		return "station"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// PassengersLoaded carries the registered passengers.
type PassengersLoaded struct {
	Passengers []domain.Passenger
	Err        error
}

// PassengerRegistered signals a registration attempt finished.
type PassengerRegistered struct {
	Passenger domain.Passenger
	Err       error
}

// TicketSold signals a sale attempt finished.
type TicketSold struct {
	Ticket    domain.Ticket
	Passenger domain.Passenger
	Pricing   domain.PricingSettings
	Err       error
}

// SpendLoaded carries the total spend of one passenger.
type SpendLoaded struct {
	Spend   domain.Spend
	Pricing domain.PricingSettings
	Err     error
}

// TariffsLoaded carries the tariff table and the price bounds in force.
type TariffsLoaded struct {
	Tariffs []domain.Tariff
	Pricing domain.PricingSettings
	Err     error
}

// TariffSaved signals a tariff update finished.
type TariffSaved struct {
	Tariff domain.Tariff
	Err    error
}

// TicketsLoaded carries the ledger together with the passengers it refers to.
type TicketsLoaded struct {
	Tickets    []domain.Ticket
	Passengers []domain.Passenger
	Pricing    domain.PricingSettings
	Err        error
}

// DestinationFiltered carries the passengers travelling to one destination.
type DestinationFiltered struct {
	Destination domain.Destination
	Passengers  []domain.Passenger
	Err         error
}

// StatsLoaded carries cashbox statistics.
type StatsLoaded struct {
	Stats   domain.Statistics
	Pricing domain.PricingSettings
	Err     error
}

// StationLoaded carries the station description. Settings is nil when the
// settings service is not wired.
type StationLoaded struct {
	Info     domain.StationInfo
	Pricing  domain.PricingSettings
	Settings *domain.StationSettings
	Err      error
}

// StationReset signals a reset attempt finished.
type StationReset struct {
	Err error
}
