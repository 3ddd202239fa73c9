// Package config parses the rsacalc command line. Each subcommand owns a
// flag.FlagSet; values resolve with the priority CLI flags > RSACALC_*
// environment variables > defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/rsacalc/internal/errors"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/ui"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "RSACALC_"

// Command is an rsacalc subcommand.
type Command string

const (
	CommandKeygen  Command = "keygen"
	CommandEncrypt Command = "encrypt"
	CommandDecrypt Command = "decrypt"
	CommandServe   Command = "serve"
)

// Commands lists the subcommands in usage order.
var Commands = []Command{CommandKeygen, CommandEncrypt, CommandDecrypt, CommandServe}

// Defaults.
const (
	DefaultDigits         = 50
	DefaultPublicKeyPath  = "pk.txt"
	DefaultSecretKeyPath  = "sk.txt"
	DefaultTimeout        = 10 * time.Minute
	DefaultAddr           = ":8080"
	DefaultServeMaxDigits = 200
)

// AppConfig is the resolved configuration of one invocation.
type AppConfig struct {
	Command Command

	// Global options.
	Verbose     bool
	Quiet       bool
	NoColor     bool
	Theme       string
	MetricsFile string
	Timeout     time.Duration

	// keygen
	Digits         int
	PublicKeyPath  string
	SecretKeyPath  string
	Seed           uint64
	MaxAttempts    int
	MaxKeyAttempts int

	// encrypt and decrypt
	Input        string
	Output       string
	InputIsPath  bool
	OutputIsPath bool
	KeyPath      string
	Base64       bool
	Workers      int

	// serve
	Addr      string
	MaxDigits int
}

// ParseConfig parses args (without the program name) into an AppConfig.
//
// Parameters:
//   - programName: Used in usage output.
//   - args: The subcommand followed by its flags and positional payload.
//   - errorOutput: Receives usage and flag errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError for an
//     unknown command or bad flags, or a ValidationError for out-of-range
//     values.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	if len(args) == 0 {
		printUsage(programName, errorOutput)
		return AppConfig{}, apperrors.NewConfigError("missing command")
	}
	cmd := Command(args[0])
	switch cmd {
	case CommandKeygen, CommandEncrypt, CommandDecrypt, CommandServe:
	case "help", "-h", "-help", "--help":
		printUsage(programName, errorOutput)
		return AppConfig{}, flag.ErrHelp
	default:
		printUsage(programName, errorOutput)
		return AppConfig{}, apperrors.NewConfigError("unknown command %q", args[0])
	}

	cfg := AppConfig{Command: cmd}
	fs := flag.NewFlagSet(programName+" "+string(cmd), flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	registerGlobalFlags(fs, &cfg)

	switch cmd {
	case CommandKeygen:
		fs.IntVar(&cfg.Digits, "digits", DefaultDigits, "Decimal digits of the modulus.")
		fs.StringVar(&cfg.PublicKeyPath, "pk", DefaultPublicKeyPath, "Public key output path.")
		fs.StringVar(&cfg.SecretKeyPath, "sk", DefaultSecretKeyPath, "Secret key output path.")
		fs.Uint64Var(&cfg.Seed, "seed", 0, "Prime search seed (0 for a time-based seed).")
		fs.IntVar(&cfg.MaxAttempts, "max-attempts", 0, "Candidates tested per prime before giving up (0 for unbounded).")
		fs.IntVar(&cfg.MaxKeyAttempts, "max-key-attempts", keys.DefaultMaxKeyAttempts, "Prime pairs drawn before key derivation gives up.")
	case CommandEncrypt, CommandDecrypt:
		defaultKey, suffix := DefaultPublicKeyPath, ".e"
		if cmd == CommandDecrypt {
			defaultKey, suffix = DefaultSecretKeyPath, ".d"
		}
		fs.StringVar(&cfg.Input, "in", "", "Payload, or its path with -in-file. Defaults to the first argument, then stdin.")
		fs.StringVar(&cfg.Output, "out", "", "Output path with -out-file (defaults to the input plus "+suffix+").")
		fs.BoolVar(&cfg.InputIsPath, "in-file", false, "Treat -in as a file path.")
		fs.BoolVar(&cfg.OutputIsPath, "out-file", false, "Write the result to a file instead of stdout.")
		fs.StringVar(&cfg.KeyPath, "key", defaultKey, "Key file path.")
		fs.BoolVar(&cfg.Base64, "base64", true, "Use base64 text for the ciphertext.")
		fs.IntVar(&cfg.Workers, "workers", 0, "Blocks processed concurrently (0 for adaptive).")
	case CommandServe:
		fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address.")
		fs.IntVar(&cfg.MaxDigits, "max-digits", DefaultServeMaxDigits, "Largest modulus size accepted by POST /v1/keys.")
		fs.IntVar(&cfg.Workers, "workers", 0, "Blocks processed concurrently per request (0 for adaptive).")
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	applyEnvOverrides(&cfg, fs)

	if (cmd == CommandEncrypt || cmd == CommandDecrypt) && cfg.Input == "" && fs.NArg() > 0 {
		cfg.Input = strings.Join(fs.Args(), " ")
	}
	if cfg.OutputIsPath && cfg.Output == "" {
		if cfg.Input == "" {
			return AppConfig{}, apperrors.NewConfigError("-out-file needs -out when reading stdin")
		}
		cfg.Output = cfg.Input + defaultSuffix(cmd)
	}

	cfg = ApplyAdaptiveWorkers(cfg)
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func registerGlobalFlags(fs *flag.FlagSet, cfg *AppConfig) {
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (debug logging).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print results.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Theme, "theme", ui.DarkTheme.Name, "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write prometheus metrics to this file on exit.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Time limit for the command.")
}

func defaultSuffix(cmd Command) string {
	if cmd == CommandDecrypt {
		return ".d"
	}
	return ".e"
}

// Validate checks ranges that flag parsing cannot express.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.ValidationError{Field: "theme", Message: "must be one of " + strings.Join(ui.ThemeNames(), ", ")}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	switch c.Command {
	case CommandKeygen:
		if c.Digits < keys.MinDigits || c.Digits > keys.MaxDigits {
			return apperrors.ValidationError{Field: "digits", Message: fmt.Sprintf("must be in [%d, %d]", keys.MinDigits, keys.MaxDigits)}
		}
		if c.MaxAttempts < 0 || c.MaxKeyAttempts < 1 {
			return apperrors.ValidationError{Field: "max-attempts", Message: "attempt budgets must be positive (0 is unbounded for -max-attempts)"}
		}
		if c.PublicKeyPath == "" || c.SecretKeyPath == "" {
			return apperrors.ValidationError{Field: "pk", Message: "key paths must not be empty"}
		}
	case CommandEncrypt, CommandDecrypt:
		if c.KeyPath == "" {
			return apperrors.ValidationError{Field: "key", Message: "must not be empty"}
		}
		if c.InputIsPath && c.Input == "" {
			return apperrors.ValidationError{Field: "in", Message: "a path is required with -in-file"}
		}
	case CommandServe:
		if c.MaxDigits < keys.MinDigits || c.MaxDigits > keys.MaxDigits {
			return apperrors.ValidationError{Field: "max-digits", Message: fmt.Sprintf("must be in [%d, %d]", keys.MinDigits, keys.MaxDigits)}
		}
	}
	return nil
}

func printUsage(programName string, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags] [payload]\n\nCommands:\n", programName)
	fmt.Fprintf(w, "  keygen   Generate a key pair (-digits, -pk, -sk, -seed)\n")
	fmt.Fprintf(w, "  encrypt  Encrypt a payload with a public key (-in, -out, -key, -base64)\n")
	fmt.Fprintf(w, "  decrypt  Decrypt a payload with a secret key (-in, -out, -key, -base64)\n")
	fmt.Fprintf(w, "  serve    Serve the HTTP API (-addr, -max-digits)\n")
	fmt.Fprintf(w, "\nRun '%s <command> -h' for the flags of a command.\n", programName)
}
