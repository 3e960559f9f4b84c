package tui

import "errors"

// ErrMissingStationService is returned when the station service is not provided.
var ErrMissingStationService = errors.New("tui: station service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
