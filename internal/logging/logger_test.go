package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	errBoom := errors.New("boom")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("path", "pk.txt"), "path", "pk.txt"},
		{"Int", Int("digits", 50), "digits", 50},
		{"Uint64", Uint64("attempt", 12345678901234567890), "attempt", uint64(12345678901234567890)},
		{"Float64", Float64("seconds", 1.5), "seconds", 1.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(errBoom), "error", errBoom},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "keygen").Info("prime found", Int("digits", 25))

	out := buf.String()
	for _, want := range []string{"keygen", "prime found", `"digits":25`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    zerolog.Level
		log      func(Logger)
		contains []string
		empty    bool
	}{
		{
			name:     "error with cause and fields",
			level:    zerolog.InfoLevel,
			log:      func(l Logger) { l.Error("key derivation failed", errors.New("not invertible"), Int("attempt", 3)) },
			contains: []string{"key derivation failed", "not invertible", `"attempt":3`, `"level":"error"`},
		},
		{
			name:     "error with nil cause",
			level:    zerolog.InfoLevel,
			log:      func(l Logger) { l.Error("warning", nil) },
			contains: []string{"warning", "error"},
		},
		{
			name:     "debug enabled",
			level:    zerolog.DebugLevel,
			log:      func(l Logger) { l.Debug("prime candidate rejected", String("reason", "composite")) },
			contains: []string{"prime candidate rejected", "composite", `"level":"debug"`},
		},
		{
			name:  "debug suppressed at info level",
			level: zerolog.InfoLevel,
			log:   func(l Logger) { l.Debug("prime candidate rejected") },
			empty: true,
		},
		{
			name:     "printf",
			level:    zerolog.InfoLevel,
			log:      func(l Logger) { l.Printf("wrote %d blocks", 4) },
			contains: []string{"wrote 4 blocks"},
		},
		{
			name:     "println",
			level:    zerolog.InfoLevel,
			log:      func(l Logger) { l.Println("encrypt", "done") },
			contains: []string{"encrypt done"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLevelLogger(&buf, "test", tt.level))
			out := buf.String()
			if tt.empty {
				if out != "" {
					t.Errorf("expected no output, got: %s", out)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "s", Value: "hello"}, `"s":"hello"`},
		{"int", Field{Key: "n", Value: 42}, `"n":42`},
		{"int64", Field{Key: "n", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "n", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "f", Value: 3.14}, "3.14"},
		{"bool", Field{Key: "b", Value: true}, `"b":true`},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, `"cause":"oops"`},
		{"stringer", Field{Key: "d", Value: stringer("17")}, `"d":"17"`},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 1}}, `"X":1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewZerologAdapter(zerolog.New(&buf)).Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %s, got: %s", tt.contains, buf.String())
			}
		})
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Error("OrNop(nil) should return a NopLogger")
	}
	var buf bytes.Buffer
	l := NewLogger(&buf, "x")
	if OrNop(l) != Logger(l) {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
	// Must not panic.
	NopLogger{}.Error("ignored", errors.New("x"), Int("n", 1))
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = (*ZerologAdapter)(nil)
	var _ Logger = NopLogger{}
}
