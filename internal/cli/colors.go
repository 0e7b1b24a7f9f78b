package cli

import "github.com/charmbracelet/lipgloss"

// Luma colour palette
// Shared across CLI output and the progress UI for consistent branding
var (
	// Brightness ramp (dark to bright)
	LumaShadow = lipgloss.Color("#3A3A5C") // Deep indigo
	LumaDusk   = lipgloss.Color("#6C63FF") // Violet
	LumaDay    = lipgloss.Color("#F8B31D") // Brand yellow
	LumaGlare  = lipgloss.Color("#FFF3C4") // Pale highlight

	// Accent colours
	SlateGray = lipgloss.Color("#8A8FA3") // Subtle text
)

// ChannelColor returns the terminal colour used for an RGB channel key
func ChannelColor(channel string) lipgloss.Color {
	switch channel {
	case "r":
		return lipgloss.Color("#D62728")
	case "g":
		return lipgloss.Color("#2CA02C")
	case "b":
		return lipgloss.Color("#1F77B4")
	}
	return SlateGray
}
