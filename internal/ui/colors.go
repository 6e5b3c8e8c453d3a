package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI palette so output follows the user's terminal theme.
const (
	ColorSuccess   lipgloss.Color = "2" // green
	ColorError     lipgloss.Color = "1" // red
	ColorWarning   lipgloss.Color = "3" // yellow
	ColorSecondary lipgloss.Color = "4" // blue
	ColorMuted     lipgloss.Color = "8" // bright black
)

// Color modes accepted by SetColorMode, matching output.color in the config.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// SetColorMode switches the lipgloss color profile. "auto" keeps whatever
// termenv detected for stdout, honoring NO_COLOR and CLICOLOR_FORCE.
func SetColorMode(mode string) {
	switch mode {
	case ColorNever:
		DisableColors()
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
}

// DisableColors renders all styles as plain text (--no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorsEnabled reports whether styles currently emit escape sequences.
func ColorsEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}
