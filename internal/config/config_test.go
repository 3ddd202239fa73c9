package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/rsacalc/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("rsacalc", []string{"keygen"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Command != CommandKeygen || cfg.Digits != DefaultDigits ||
		cfg.PublicKeyPath != "pk.txt" || cfg.SecretKeyPath != "sk.txt" ||
		cfg.MaxKeyAttempts != 16 || cfg.Timeout != DefaultTimeout || cfg.Theme != "dark" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	cfg, err = ParseConfig("rsacalc", []string{"decrypt", "TWFu"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.KeyPath != "sk.txt" || !cfg.Base64 || cfg.Input != "TWFu" || cfg.Workers < 1 {
		t.Errorf("unexpected decrypt defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := ParseConfig("rsacalc", []string{
		"encrypt", "-in", "plain.txt", "-in-file", "-out-file", "-key", "keys/pk.txt",
		"-base64=false", "-workers", "3", "-timeout", "30s", "-v", "-theme", "light",
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.InputIsPath || !cfg.OutputIsPath || cfg.Output != "plain.txt.e" {
		t.Errorf("paths = %+v", cfg)
	}
	if cfg.KeyPath != "keys/pk.txt" || cfg.Base64 || cfg.Workers != 3 || cfg.Timeout != 30*time.Second || !cfg.Verbose || cfg.Theme != "light" {
		t.Errorf("flags = %+v", cfg)
	}

	cfg, err = ParseConfig("rsacalc", []string{"decrypt", "-in", "c.txt", "-in-file", "-out-file"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "c.txt.d" {
		t.Errorf("decrypt default output = %q", cfg.Output)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config bool
	}{
		{"no command", nil, true},
		{"unknown command", []string{"sign"}, true},
		{"unknown flag", []string{"keygen", "-bogus"}, true},
		{"digits too small", []string{"keygen", "-digits", "4"}, false},
		{"digits too large", []string{"keygen", "-digits", "100000"}, false},
		{"negative workers", []string{"encrypt", "-workers", "-1", "x"}, false},
		{"zero timeout", []string{"keygen", "-timeout", "0s"}, false},
		{"unknown theme", []string{"keygen", "-theme", "orange"}, false},
		{"out-file from stdin", []string{"encrypt", "-out-file"}, true},
		{"flag of another command", []string{"encrypt", "-digits", "20"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("rsacalc", tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected an error")
			}
			var cfgErr apperrors.ConfigError
			var valErr apperrors.ValidationError
			if tt.config && !errors.As(err, &cfgErr) {
				t.Errorf("error %v is not a ConfigError", err)
			}
			if !tt.config && !errors.As(err, &valErr) {
				t.Errorf("error %v is not a ValidationError", err)
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d", apperrors.ExitCode(err))
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	for _, args := range [][]string{{"help"}, {"-h"}, {"keygen", "-h"}} {
		if _, err := ParseConfig("rsacalc", args, io.Discard); !errors.Is(err, flag.ErrHelp) {
			t.Errorf("ParseConfig(%v) error = %v, want flag.ErrHelp", args, err)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RSACALC_DIGITS", "30")
	t.Setenv("RSACALC_SEED", "77")
	t.Setenv("RSACALC_PK", "env-pk.txt")
	t.Setenv("RSACALC_QUIET", "yes")
	t.Setenv("RSACALC_TIMEOUT", "1m")
	t.Setenv("RSACALC_BASE64", "false")
	t.Setenv("RSACALC_THEME", "none")

	cfg, err := ParseConfig("rsacalc", []string{"keygen", "-digits", "40"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Digits != 40 {
		t.Errorf("flag should win over env, digits = %d", cfg.Digits)
	}
	if cfg.Seed != 77 || cfg.PublicKeyPath != "env-pk.txt" || !cfg.Quiet || cfg.Timeout != time.Minute || cfg.Theme != "none" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	cfg, err = ParseConfig("rsacalc", []string{"encrypt", "x"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Base64 || cfg.Digits != 0 {
		t.Errorf("encrypt should take BASE64 but not DIGITS from env: %+v", cfg)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.val, tt.def, got)
		}
	}
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	if got := ApplyAdaptiveWorkers(AppConfig{Workers: 5}).Workers; got != 5 {
		t.Errorf("explicit workers overridden: %d", got)
	}
	got := ApplyAdaptiveWorkers(AppConfig{}).Workers
	if got < 1 || got > 16 || got != EstimateOptimalWorkers() {
		t.Errorf("adaptive workers = %d", got)
	}
}
