package platform

import (
	"fmt"
	"runtime"
)

// HeapStats is a point-in-time summary of the Go heap.
type HeapStats struct {
	Alloc      uint64 // bytes of allocated heap objects
	Sys        uint64 // bytes obtained from the OS
	Objects    uint64 // live heap objects
	NumGC      uint32
	Goroutines int
}

// ReadHeapStats samples the runtime memory statistics.
func ReadHeapStats() HeapStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return HeapStats{
		Alloc:      m.HeapAlloc,
		Sys:        m.Sys,
		Objects:    m.HeapObjects,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}

func (s HeapStats) String() string {
	return fmt.Sprintf("heap=%s sys=%s objects=%d gc=%d goroutines=%d",
		formatBytes(s.Alloc), formatBytes(s.Sys), s.Objects, s.NumGC, s.Goroutines)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
