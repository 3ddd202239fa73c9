package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rsacalc/internal/format"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/ui"
)

// KeySummary describes a generated key pair for display.
type KeySummary struct {
	Pair          keys.Pair
	PublicPath    string
	SecretPath    string
	Duration      time.Duration
	Candidates    int
	RequestedSize int
}

// RenderKeySummary renders the summary as a bordered lipgloss panel using
// the active panel theme. Long values are truncated unless verbose is set.
func RenderKeySummary(s KeySummary, verbose bool) string {
	theme := ui.GetCurrentPanelTheme()
	label := lipgloss.NewStyle().Foreground(theme.Label).Width(16)
	value := lipgloss.NewStyle().Foreground(theme.Value)
	title := lipgloss.NewStyle().Foreground(theme.Title).Bold(true)

	show := func(v string) string {
		if verbose {
			return v
		}
		return format.TruncateDigits(v, TruncationLimit, DisplayEdges)
	}
	pk := s.Pair.Public
	rows := [][2]string{
		{"Modulus n", show(pk.N.String())},
		{"Digits", fmt.Sprintf("%d (requested %d)", pk.N.Digits(), s.RequestedSize)},
		{"Exponent e", pk.E.String()},
		{"Fragment size", fmt.Sprintf("%d bytes -> %d base-%d digits", pk.FragmentSize, pk.EncryptFragmentSize, pk.EncryptByteVal)},
		{"Public key", s.PublicPath},
		{"Secret key", s.SecretPath},
		{"Time", format.FormatExecutionDuration(s.Duration)},
	}
	if s.Candidates > 0 {
		rows = append(rows, [2]string{"Candidates", format.FormatNumberString(fmt.Sprint(s.Candidates))})
	}
	if verbose {
		rows = append(rows,
			[2]string{"Prime p", s.Pair.P.String()},
			[2]string{"Prime q", s.Pair.Q.String()},
		)
	}

	lines := []string{title.Render("Key pair generated")}
	for _, r := range rows {
		lines = append(lines, label.Render(r[0])+value.Render(r[1]))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

// DisplayKeySummary writes the rendered summary followed by a newline.
func DisplayKeySummary(out io.Writer, s KeySummary, verbose bool) {
	fmt.Fprintln(out, RenderKeySummary(s, verbose))
}
