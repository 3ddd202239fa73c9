package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string.
// A leading minus sign is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3)
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens a long decimal string to its first and last edges
// digits around an ellipsis. Strings of at most limit characters are
// returned unchanged.
//
// Parameters:
//   - s: The decimal string.
//   - limit: The length from which truncation applies.
//   - edges: The number of digits kept at each end.
//
// Returns:
//   - string: The possibly truncated string.
func TruncateDigits(s string, limit, edges int) string {
	if len(s) <= limit || 2*edges >= len(s) {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:edges], s[len(s)-edges:], len(s))
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
