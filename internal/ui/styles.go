package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

var (
	SectionStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	DimStyle     = lipgloss.NewStyle().Foreground(ColorDarkGray)
)

// SupportsColor reports whether the terminal renders colors at all;
// plain output keeps piped logs readable.
func SupportsColor() bool {
	return termenv.DefaultOutput().ColorProfile() != termenv.Ascii
}

// Divider renders a horizontal rule of the given width.
func Divider(width int) string {
	if width <= 0 {
		width = 60
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

// Section renders a section heading followed by a rule.
func Section(heading string) string {
	return SectionStyle.Render(heading) + "\n" + Divider(60)
}
