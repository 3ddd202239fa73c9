// Package ui provides theme and color support for the rsacalc command line.
// It defines ANSI color schemes for inline messages and lipgloss palettes
// for the boxed key summary, and honours NO_COLOR and -no-color.
package ui
