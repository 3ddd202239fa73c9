package metrics

import (
	"strings"
	"testing"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()

	// Sys should not decrease between snapshots
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
}

func TestMemorySnapshot_Format(t *testing.T) {
	t.Parallel()

	got := MemorySnapshot{HeapAlloc: 2048, Sys: 3 << 20, NumGC: 4}.Format()
	if got != "2.0 KiB heap, 3.0 MiB sys, 4 GC" {
		t.Errorf("Format() = %q", got)
	}
	if !strings.Contains(NewMemoryCollector().Snapshot().Format(), "heap") {
		t.Error("live snapshot should format")
	}
}
