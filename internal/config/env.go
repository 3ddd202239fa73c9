// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isDefined reports whether the subcommand registered the flag at all, so
// that a keygen variable does not leak into an encrypt invocation.
func isDefined(fs *flag.FlagSet, name string) bool {
	return fs.Lookup(name) != nil
}

// envOverride maps an env key (without the RSACALC_ prefix) to the flag it
// shadows and the function that applies the value.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func stringOverride(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = v }
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = parseBoolEnv(v, *dst(c)) }
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"DIGITS", "digits", intOverride(func(c *AppConfig) *int { return &c.Digits })},
	{"MAX_ATTEMPTS", "max-attempts", intOverride(func(c *AppConfig) *int { return &c.MaxAttempts })},
	{"MAX_KEY_ATTEMPTS", "max-key-attempts", intOverride(func(c *AppConfig) *int { return &c.MaxKeyAttempts })},
	{"WORKERS", "workers", intOverride(func(c *AppConfig) *int { return &c.Workers })},
	{"MAX_DIGITS", "max-digits", intOverride(func(c *AppConfig) *int { return &c.MaxDigits })},
	{"SEED", "seed", func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", "timeout", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"PK", "pk", stringOverride(func(c *AppConfig) *string { return &c.PublicKeyPath })},
	{"SK", "sk", stringOverride(func(c *AppConfig) *string { return &c.SecretKeyPath })},
	{"KEY", "key", stringOverride(func(c *AppConfig) *string { return &c.KeyPath })},
	{"ADDR", "addr", stringOverride(func(c *AppConfig) *string { return &c.Addr })},
	{"THEME", "theme", stringOverride(func(c *AppConfig) *string { return &c.Theme })},
	{"METRICS_FILE", "metrics-file", stringOverride(func(c *AppConfig) *string { return &c.MetricsFile })},

	// Boolean overrides
	{"BASE64", "base64", boolOverride(func(c *AppConfig) *bool { return &c.Base64 })},
	{"VERBOSE", "v", boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", "quiet", boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", "no-color", boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags the subcommand defines but that were not explicitly set on
// the command line.
//
// Supported environment variables (all prefixed with RSACALC_):
//   - DIGITS, SEED, MAX_ATTEMPTS, MAX_KEY_ATTEMPTS, PK, SK (keygen)
//   - KEY, BASE64, WORKERS (encrypt, decrypt)
//   - ADDR, MAX_DIGITS (serve)
//   - TIMEOUT, VERBOSE, QUIET, NO_COLOR, THEME, METRICS_FILE (all commands)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if !isDefined(fs, o.flag) || isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
