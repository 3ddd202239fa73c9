package format

import (
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1500*time.Millisecond + 300*time.Microsecond, "1.5s"},
		{2*time.Minute + 31*time.Second + 400*time.Millisecond, "2m31s"},
		{time.Hour + 500*time.Millisecond, "1h0m1s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"-123", "-123"},
	}

	for _, tt := range tests {
		got := FormatNumberString(tt.input)
		if got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s            string
		limit, edges int
		expected     string
	}{
		{"3233", 10, 2, "3233"},
		{"12345678901234567890", 10, 3, "123...890 (20 digits)"},
		{"12345678901", 10, 6, "12345678901"},
	}
	for _, tt := range tests {
		if got := TruncateDigits(tt.s, tt.limit, tt.edges); got != tt.expected {
			t.Errorf("TruncateDigits(%q, %d, %d) = %q; want %q", tt.s, tt.limit, tt.edges, got, tt.expected)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		b        uint64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.b); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q; want %q", tt.b, got, tt.expected)
		}
	}
}
