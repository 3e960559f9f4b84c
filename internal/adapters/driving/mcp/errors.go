// Package mcp provides an MCP (Model Context Protocol) server adapter for the cashbox.
// It lets AI assistants register passengers, sell tickets and read the takings.
package mcp

import "errors"

// ErrMissingStationService is returned when the station service is not provided.
var ErrMissingStationService = errors.New("mcp: station service is required")
