package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// defaultAccent is a soft blue used for headers and the prompt target.
const defaultAccent = "#7AA2F7"

var accentColor = defaultAccent

var (
	// Accent highlights ids and headers.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted is for hints and secondary info.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold is used for the prompt and the about banner.
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold.
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// ConfigureAccent sets the accent color from configuration. Accepted values
// are ANSI codes ("0" to "255") and hex colors ("#RRGGBB"). Invalid values
// are ignored and reported as false.
func ConfigureAccent(value string) bool {
	color, ok := normalizeAccent(value)
	if !ok {
		return false
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	return true
}

// AccentColor returns the active accent color.
func AccentColor() string {
	return accentColor
}

func normalizeAccent(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if strings.HasPrefix(value, "#") {
		if len(value) != 7 {
			return "", false
		}
		if _, err := strconv.ParseUint(value[1:], 16, 32); err != nil {
			return "", false
		}
		return strings.ToUpper(value), true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
