// Package ui renders status lines and results for the apkmeta CLI.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor disables colored output when true. NO_COLOR in the environment
// sets it at startup.
var NoColor = false

// palette maps each role to its terminal color.
var palette = struct {
	verb, logo, fail, muted lipgloss.Color
}{
	verb:  lipgloss.Color("#9080a0"),
	logo:  lipgloss.Color("#6b8c6b"),
	fail:  lipgloss.Color("#c87070"),
	muted: lipgloss.Color("#6a6a74"),
}

// Styles, rebuilt by SetNoColor.
var (
	AccentStyle lipgloss.Style // status verbs and titles
	LogoStyle   lipgloss.Style
	ErrorStyle  lipgloss.Style
	DimStyle    lipgloss.Style
	BoldStyle   lipgloss.Style
)

func init() {
	_, NoColor = os.LookupEnv("NO_COLOR")
	initStyles()
}

func initStyles() {
	bold := lipgloss.NewStyle().Bold(true)
	BoldStyle = bold
	if NoColor {
		AccentStyle = bold
		LogoStyle = lipgloss.NewStyle()
		ErrorStyle = lipgloss.NewStyle()
		DimStyle = lipgloss.NewStyle()
		return
	}
	AccentStyle = bold.Foreground(palette.verb)
	LogoStyle = lipgloss.NewStyle().Foreground(palette.logo)
	ErrorStyle = lipgloss.NewStyle().Foreground(palette.fail)
	DimStyle = lipgloss.NewStyle().Foreground(palette.muted)
}

// SetNoColor enables or disables colored output.
func SetNoColor(noColor bool) {
	NoColor = noColor
	initStyles()
}

// Title renders s in the accent style. Used for the logo in --version.
func Title(s string) string {
	return AccentStyle.Render(s)
}

// Dim renders secondary values, such as placeholders for empty fields.
func Dim(s string) string {
	return DimStyle.Render(s)
}

// Bold renders s in bold.
func Bold(s string) string {
	return BoldStyle.Render(s)
}
