package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrMissingConverterService, ErrMissingHistoryService)
	assert.NotErrorIs(t, ErrMissingConverterService, ErrInvalidPorts)
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingConverterService.Error(), "converter service")
	assert.Contains(t, ErrMissingHistoryService.Error(), "history service")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
