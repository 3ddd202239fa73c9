package ui

// The Color* functions return an escape code of the active theme, or an
// empty string when colors are disabled.

func ColorAccent() string  { return GetCurrentTheme().Accent }
func ColorMuted() string   { return GetCurrentTheme().Muted }
func ColorSuccess() string { return GetCurrentTheme().Success }
func ColorReset() string   { return GetCurrentTheme().Reset }

// Colorize wraps s in color and a reset. With colors disabled it returns s.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
