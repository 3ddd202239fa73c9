// Package metrics exposes prometheus collectors for the rsacalc engine:
// prime search candidates, key generation and codec blocks, plus runtime
// memory gauges. Every Collectors value owns its registry so tests and
// concurrent servers never share global state.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/rsacalc/internal/codec"
	"github.com/agbru/rsacalc/internal/numtheory"
)

// Namespace prefixes every metric name.
const Namespace = "rsacalc"

// Collectors groups the rsacalc metrics and the registry they live in.
// All methods are safe on a nil receiver, which records nothing.
type Collectors struct {
	registry *prometheus.Registry

	primeCandidates *prometheus.CounterVec
	keygenTotal     *prometheus.CounterVec
	keygenDuration  prometheus.Histogram
	codecBlocks     *prometheus.CounterVec
	codecDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime collector and the memory gauges, in a fresh registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		primeCandidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "prime_candidates_total",
			Help:      "Prime candidates tested, by outcome.",
		}, []string{"result"}),
		keygenTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "keygen_total",
			Help:      "Key pair generations, by outcome.",
		}, []string{"result"}),
		keygenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "keygen_duration_seconds",
			Help:      "Wall time of successful key pair generations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		codecBlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "codec_blocks_total",
			Help:      "Blocks processed by the fragmentation codec.",
		}, []string{"direction"}),
		codecDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "codec_duration_seconds",
			Help:      "Wall time of whole encrypt and decrypt operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"direction", "result"}),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		c.primeCandidates,
		c.keygenTotal,
		c.keygenDuration,
		c.codecBlocks,
		c.codecDuration,
	)
	registerMemoryGauges(c.registry, NewMemoryCollector())
	return c
}

// Registry returns the underlying registry so callers can add their own
// collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveCandidate records one tested prime candidate. Its signature
// matches numtheory.ProgressFunc.
func (c *Collectors) ObserveCandidate(ev numtheory.CandidateEvent) {
	if c == nil {
		return
	}
	result := "composite"
	if ev.Prime {
		result = "prime"
	}
	c.primeCandidates.WithLabelValues(result).Inc()
}

// ObserveKeygen records the outcome of one key pair generation.
func (c *Collectors) ObserveKeygen(elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.keygenTotal.WithLabelValues(resultLabel(err)).Inc()
	if err == nil {
		c.keygenDuration.Observe(elapsed.Seconds())
	}
}

// ObserveBlock records one processed block. Its signature matches
// codec.Codec.OnBlock.
func (c *Collectors) ObserveBlock(ev codec.BlockEvent) {
	if c == nil {
		return
	}
	c.codecBlocks.WithLabelValues(string(ev.Direction)).Inc()
}

// ObserveCodec records a whole encrypt or decrypt call.
func (c *Collectors) ObserveCodec(dir codec.Direction, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.codecDuration.WithLabelValues(string(dir), resultLabel(err)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// WriteToTextfile writes the current values to path in the textfile
// collector format. The file is written atomically.
func (c *Collectors) WriteToTextfile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
