// Package tui provides an interactive terminal user interface for the cashbox.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Station owns the cashbox every view works against.
	Station driving.StationService

	// Settings exposes the configured station settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(station driving.StationService, settings driving.SettingsService) *Ports {
	return &Ports{
		Station:  station,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Station == nil {
		return ErrMissingStationService
	}
	return nil
}
