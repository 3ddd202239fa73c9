// Package logging provides the structured logging interface shared by the
// rsacalc packages. Key generation, prime search and the block codec report
// their diagnostics through a Logger so that the CLI and the HTTP server can
// decide where (and whether) those events are rendered.
//
// Events go to a zerolog adapter, or to a no-op logger when a caller does not
// inject one.
package logging
