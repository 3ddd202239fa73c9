package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/rsacalc/internal/server"
)

// runServe serves the HTTP API until the context is canceled by a signal.
func (a *Application) runServe(ctx context.Context, out io.Writer) error {
	cfg := a.Config
	srv := server.NewServer(server.Config{
		Addr:           cfg.Addr,
		MaxDigits:      cfg.MaxDigits,
		Workers:        cfg.Workers,
		MaxKeyAttempts: cfg.MaxKeyAttempts,
	}, a.Metrics, a.Logger)

	if !cfg.Quiet {
		fmt.Fprintf(out, "rsacalc %s serving on %s (POST /v1/keys, /v1/encrypt, /v1/decrypt; GET /metrics, /healthz)\n", Version, cfg.Addr)
	}
	return srv.ListenAndServe(ctx)
}
