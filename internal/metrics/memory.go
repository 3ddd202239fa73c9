package metrics

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/rsacalc/internal/format"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// registerMemoryGauges exposes the snapshot fields that matter for large
// operands. Each scrape takes its own snapshot.
func registerMemoryGauges(reg prometheus.Registerer, mc *MemoryCollector) {
	gauge := func(name, help string, read func(MemorySnapshot) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "memory",
			Name:      name,
			Help:      help,
		}, func() float64 { return read(mc.Snapshot()) })
	}
	reg.MustRegister(
		gauge("heap_alloc_bytes", "Heap bytes in use.", func(s MemorySnapshot) float64 { return float64(s.HeapAlloc) }),
		gauge("heap_objects", "Allocated heap objects.", func(s MemorySnapshot) float64 { return float64(s.HeapObjects) }),
		gauge("sys_bytes", "Bytes obtained from the OS.", func(s MemorySnapshot) float64 { return float64(s.Sys) }),
	)
}

// Format summarizes the snapshot for the verbose CLI footer.
func (s MemorySnapshot) Format() string {
	return fmt.Sprintf("%s heap, %s sys, %d GC", format.FormatBytes(s.HeapAlloc), format.FormatBytes(s.Sys), s.NumGC)
}
