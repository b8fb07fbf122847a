// Package theme defines named lipgloss style sets for the UI.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme groups the styles used by the typing view.
type Theme struct {
	Name      string
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Pending   lipgloss.Style
	LineNo    lipgloss.Style
	Header    lipgloss.Style
	Accent    lipgloss.Style
	Footer    lipgloss.Style
}

// New returns the theme for the given name. Unknown names are an error.
func New(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return darkTheme(), nil
	case "light":
		return lightTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the available theme names.
func Names() []string {
	return []string{"dark", "light"}
}

func darkTheme() Theme {
	return Theme{
		Name:      "dark",
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		LineNo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:      "light",
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")),
		Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#C81E1E")),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9A9A")),
		LineNo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9A6A00")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
}
