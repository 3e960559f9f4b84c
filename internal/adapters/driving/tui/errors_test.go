package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingStationService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingStationService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingStationService.Error(), "station service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
