package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/ppcp/internal/config"
)

// Catppuccin Mocha palette, mutable so config can override.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorTeal   = lipgloss.Color("#94e2d5")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorDim    = lipgloss.Color("#3a4055")
	ColorBright = lipgloss.Color("#cdd6f4")
)

// Styles are rebuilt by rebuildStyles after color changes.
var (
	styleTitle        lipgloss.Style
	styleSpinner      lipgloss.Style
	stylePath         lipgloss.Style
	styleRowLabel     lipgloss.Style
	styleNumbers      lipgloss.Style
	styleSpeed        lipgloss.Style
	styleSparkline    lipgloss.Style
	styleDone         lipgloss.Style
	styleStatus       lipgloss.Style
	styleDiagnostic   lipgloss.Style
	styleKeybindKey   lipgloss.Style
	styleKeybindLabel lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	styleSpinner = lipgloss.NewStyle().Foreground(ColorBlue)
	stylePath = lipgloss.NewStyle().Foreground(ColorBright)
	styleRowLabel = lipgloss.NewStyle().Foreground(ColorMuted).Width(8)
	styleNumbers = lipgloss.NewStyle().Foreground(ColorBright)
	styleSpeed = lipgloss.NewStyle().Foreground(ColorTeal)
	styleSparkline = lipgloss.NewStyle().Foreground(ColorBlue)
	styleDone = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
	styleDiagnostic = lipgloss.NewStyle().Foreground(ColorRed)
	styleKeybindKey = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true)
	styleKeybindLabel = lipgloss.NewStyle().Foreground(ColorMuted)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	for _, o := range []struct {
		val *string
		dst *lipgloss.Color
	}{
		{tc.Green, &ColorGreen},
		{tc.Blue, &ColorBlue},
		{tc.Yellow, &ColorYellow},
		{tc.Red, &ColorRed},
		{tc.Teal, &ColorTeal},
		{tc.Mauve, &ColorMauve},
		{tc.Muted, &ColorMuted},
		{tc.Dim, &ColorDim},
		{tc.Bright, &ColorBright},
	} {
		if o.val != nil {
			*o.dst = lipgloss.Color(*o.val)
		}
	}
	rebuildStyles()
}
