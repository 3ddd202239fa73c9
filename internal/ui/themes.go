package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. The ANSI fields color inline CLI messages; Panel
// colors the lipgloss box printed after key generation.
type Theme struct {
	Name string

	Accent  string // paths and highlighted values
	Muted   string // secondary statistics
	Success string // confirmations
	Reset   string

	Panel PanelTheme
}

// PanelTheme holds the lipgloss colors of the key summary panel.
type PanelTheme struct {
	Border lipgloss.TerminalColor
	Title  lipgloss.TerminalColor
	Label  lipgloss.TerminalColor
	Value  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
}

var (
	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  "\033[38;5;39m",
		Muted:   "\033[38;5;245m",
		Success: "\033[38;5;82m",
		Reset:   "\033[0m",
		Panel: PanelTheme{
			Border: lipgloss.Color("#FF8C00"),
			Title:  lipgloss.Color("#FFB347"),
			Label:  lipgloss.Color("#8A8A8A"),
			Value:  lipgloss.Color("#E0E0E0"),
			Dim:    lipgloss.Color("#666666"),
		},
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  "\033[38;5;27m",
		Muted:   "\033[38;5;240m",
		Success: "\033[38;5;28m",
		Reset:   "\033[0m",
		Panel: PanelTheme{
			Border: lipgloss.Color("#AF5F00"),
			Title:  lipgloss.Color("#875F00"),
			Label:  lipgloss.Color("#585858"),
			Value:  lipgloss.Color("#1C1C1C"),
			Dim:    lipgloss.Color("#8A8A8A"),
		},
	}

	// NoColorTheme leaves every escape empty and renders panels in the
	// terminal's default colors.
	NoColorTheme = Theme{
		Name: "none",
		Panel: PanelTheme{
			Border: lipgloss.NoColor{},
			Title:  lipgloss.NoColor{},
			Label:  lipgloss.NoColor{},
			Value:  lipgloss.NoColor{},
			Dim:    lipgloss.NoColor{},
		},
	}

	themes = []Theme{DarkTheme, LightTheme, NoColorTheme}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames returns the names accepted by SetTheme, default first.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentPanelTheme returns the panel palette of the active theme.
func GetCurrentPanelTheme() PanelTheme {
	return GetCurrentTheme().Panel
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name. An empty name selects the dark
// theme.
func SetTheme(name string) error {
	if name == "" {
		name = DarkTheme.Name
	}
	t, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	SetCurrentTheme(t)
	return nil
}

// InitTheme activates the named theme unless colors are disabled by the
// -no-color flag or a NO_COLOR environment variable (https://no-color.org/).
func InitTheme(name string, noColor bool) error {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return nil
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return nil
	}
	return SetTheme(name)
}
