package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

var (
	// TitleStyle is the picker heading.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// HeaderStyle is used for the profile column header row.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Bold(true)

	// SelectedStyle is used for checked rows.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// UnselectedStyle is used for unchecked rows.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// CursorStyle highlights the row under the cursor.
	CursorStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	// DimStyle is used for hints, scroll markers and absent statuses.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// PreviewStyle frames the explanation of the highlighted extension.
	PreviewStyle = lipgloss.NewStyle().
			Foreground(colorText).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorSurface0)

	// SearchStyle is the search prompt while typing.
	SearchStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// StatusBarStyle is the key help line.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keys in the help line.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)

// Status cell styles for the per-profile columns.
var (
	enabledStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	disabledStyle = lipgloss.NewStyle().Foreground(colorRed)
	commonStyle   = lipgloss.NewStyle().Foreground(colorBase).Background(colorBlue)
)
