package cli

import "github.com/charmbracelet/lipgloss"

// Spectrum palette, shared by the CLI and TUI. The band colours match the
// trigraph image channels.
var (
	BandRed   = lipgloss.Color("#FF4D4D") // 0x00-0x55 successors
	BandGreen = lipgloss.Color("#3DDC84") // 0x56-0xAA successors
	BandBlue  = lipgloss.Color("#4D8DFF") // 0xAB-0xFF successors

	BrandYellow = lipgloss.Color("#F8B31D") // Caption text
	SlateGray   = lipgloss.Color("#8A93A6") // Subtle text
)
