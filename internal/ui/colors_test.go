package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func restoreProfile(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestSetColorMode(t *testing.T) {
	restoreProfile(t)

	SetColorMode(ColorAlways)
	assert.Equal(t, termenv.ANSI, lipgloss.ColorProfile())
	assert.True(t, ColorsEnabled())

	SetColorMode(ColorNever)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
	assert.False(t, ColorsEnabled())
}

func TestDisableColors_PlainOutput(t *testing.T) {
	restoreProfile(t)

	DisableColors()
	line := FormatPhase(SymbolComplete, ColorSuccess, "Task t1", "0.2s")
	assert.Equal(t, SymbolComplete+" Task t1 0.2s", line)
}

func TestForcedColors_EmitEscapes(t *testing.T) {
	restoreProfile(t)

	SetColorMode(ColorAlways)
	line := FormatPhase(SymbolComplete, ColorSuccess, "Task t1", "")
	assert.Contains(t, line, "\x1b[")
}
