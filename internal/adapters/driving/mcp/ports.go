package mcp

import (
	"github.com/custodia-labs/cashbox-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Station owns the cashbox every tool operates on.
	Station driving.StationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Station == nil {
		return ErrMissingStationService
	}
	return nil
}
