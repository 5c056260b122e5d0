// Package style provides a functional API for composing and applying lipgloss-based terminal styles.
package style

import "github.com/charmbracelet/lipgloss"

// ANSI palette used by the CLI output. Terminal themes pick the actual shades.
var (
	Red      = lipgloss.Color("1")
	Green    = lipgloss.Color("2")
	Yellow   = lipgloss.Color("3")
	Blue     = lipgloss.Color("4")
	Purple   = lipgloss.Color("5")
	Cyan     = lipgloss.Color("6")
	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
	HiCyan   = lipgloss.Color("14")
)

// Semantic mappings
var (
	AccentColor  = HiPurple
	LinkColor    = Blue
	CountColor   = Yellow
	SuccessColor = Green
	ErrorColor   = Red
)
