// Package server exposes key generation, encryption and decryption over
// HTTP. Requests carry keys in the key file text format and binary payloads
// as base64 strings.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"

	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/logging"
	"github.com/agbru/rsacalc/internal/metrics"
)

var tracer = otel.Tracer("github.com/agbru/rsacalc/internal/server")

// Config configures a Server.
type Config struct {
	Addr string

	// MaxDigits caps the modulus size accepted by POST /v1/keys.
	MaxDigits int

	// Workers is the per-request block concurrency of the codec.
	Workers int

	// MaxKeyAttempts is passed to keys.Generator.
	MaxKeyAttempts int

	// KeygenTimeout bounds a single key generation request.
	KeygenTimeout time.Duration

	// ShutdownTimeout bounds the graceful shutdown once the serving
	// context is done.
	ShutdownTimeout time.Duration

	Security SecurityConfig
}

// Defaults applied by NewServer to zero Config fields.
const (
	DefaultMaxDigits       = 200
	DefaultKeygenDigits    = 50
	DefaultKeygenTimeout   = 2 * time.Minute
	DefaultShutdownTimeout = 5 * time.Second
)

// Server is the rsacalc HTTP API.
type Server struct {
	cfg     Config
	router  *mux.Router
	handler http.Handler
	metrics *Metrics
	logger  logging.Logger
}

// NewServer builds the router. Engine and HTTP metrics are registered in
// collectors, which may be nil.
func NewServer(cfg Config, collectors *metrics.Collectors, logger logging.Logger) *Server {
	if cfg.MaxDigits <= 0 {
		cfg.MaxDigits = DefaultMaxDigits
	}
	if cfg.MaxDigits > keys.MaxDigits {
		cfg.MaxDigits = keys.MaxDigits
	}
	if cfg.KeygenTimeout <= 0 {
		cfg.KeygenTimeout = DefaultKeygenTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Security.AllowedMethods == nil {
		cfg.Security = DefaultSecurityConfig()
	}

	s := &Server{
		cfg:     cfg,
		metrics: NewMetrics(collectors),
		logger:  logging.OrNop(logger),
	}

	// Routes live on the root router: a method mismatch inside a PathPrefix
	// subrouter is reported as 404 instead of 405.
	r := mux.NewRouter()
	r.HandleFunc("/v1/keys", s.handleKeys).Methods(http.MethodPost)
	r.HandleFunc("/v1/encrypt", s.handleEncrypt).Methods(http.MethodPost)
	r.HandleFunc("/v1/decrypt", s.handleDecrypt).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, errMethodNotAllowed)
	})
	r.Use(s.metricsMiddleware)

	s.router = r
	s.handler = SecurityMiddleware(cfg.Security, r.ServeHTTP)
	return s
}

// Handler returns the root handler with the security middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. It
// returns nil after a shutdown triggered by ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
