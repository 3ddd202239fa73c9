package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/rsacalc/internal/cli"
	"github.com/agbru/rsacalc/internal/config"
	apperrors "github.com/agbru/rsacalc/internal/errors"
	"github.com/agbru/rsacalc/internal/logging"
	"github.com/agbru/rsacalc/internal/metrics"
	"github.com/agbru/rsacalc/internal/ui"
)

var tracer = otel.Tracer("github.com/agbru/rsacalc/internal/app")

// Application represents the rsacalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Stdin     io.Reader
	Logger    logging.Logger
	Metrics   *metrics.Collectors

	newSpinner func() cli.Spinner
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStdin sets the reader used when no payload is given on the command
// line.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// WithLogger replaces the default zerolog console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithSpinner replaces the terminal spinner shown during key generation.
func WithSpinner(f func() cli.Spinner) AppOption {
	return func(a *Application) { a.newSpinner = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "rsacalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:     cfg,
		ErrWriter:  errWriter,
		Stdin:      os.Stdin,
		Metrics:    metrics.New(),
		newSpinner: cli.NewSpinner,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newConsoleLogger(errWriter, cfg)
	}
	return app, nil
}

// newConsoleLogger writes human-readable zerolog events to w. Commands only
// surface warnings unless -v is set; the server logs at info level.
func newConsoleLogger(w io.Writer, cfg config.AppConfig) logging.Logger {
	level := zerolog.WarnLevel
	switch {
	case cfg.Verbose:
		level = zerolog.DebugLevel
	case cfg.Quiet:
		level = zerolog.ErrorLevel
	case cfg.Command == config.CommandServe:
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.TimeOnly}
	return logging.NewLevelLogger(console, string(cfg.Command), level)
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if err := ui.InitTheme(a.Config.Theme, a.Config.NoColor); err != nil {
		return apperrors.HandleError(apperrors.NewConfigError("%v", err), a.ErrWriter)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var err error
	if a.Config.Command == config.CommandServe {
		err = a.runServe(ctx, out)
	} else {
		err = a.runCommand(ctx, out)
	}

	if a.Config.MetricsFile != "" {
		if werr := a.Metrics.WriteToTextfile(a.Config.MetricsFile); werr != nil {
			a.Logger.Error("failed to write metrics file", werr, logging.String("path", a.Config.MetricsFile))
			if err == nil {
				err = werr
			}
		}
	}
	return apperrors.HandleError(err, a.ErrWriter)
}

// runCommand runs keygen, encrypt or decrypt under the configured timeout.
func (a *Application) runCommand(ctx context.Context, out io.Writer) error {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	var err error
	switch a.Config.Command {
	case config.CommandKeygen:
		err = a.runKeygen(ctx, out)
	case config.CommandEncrypt:
		err = a.runEncrypt(ctx, out)
	case config.CommandDecrypt:
		err = a.runDecrypt(ctx, out)
	default:
		err = apperrors.NewConfigError("unknown command %q", a.Config.Command)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: string(a.Config.Command), Limit: a.Config.Timeout}
	}
	return err
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
