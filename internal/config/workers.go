package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag -workers
//   2. Environment variable RSACALC_WORKERS
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveWorkers replaces a zero worker count with an estimate based on
// the number of CPUs. User-specified values are preserved.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic block concurrency without
// running benchmarks. Each block is an independent modular exponentiation,
// so scaling is close to linear until the cores are saturated.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 1:
		return 1 // Sequential
	case numCPU <= 4:
		return numCPU
	case numCPU <= 16:
		return numCPU - 1 // Leave a core for I/O and the spinner
	default:
		return 16 // Diminishing returns for typical message sizes
	}
}
