package infrastructure

import (
	"runtime"
	"time"
)

// RuntimeStats is a snapshot of process statistics reported by health checks.
type RuntimeStats struct {
	GoVersion      string `json:"go_version"`
	Goroutines     int    `json:"goroutines"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	SysBytes       uint64 `json:"sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
	Uptime         string `json:"uptime"`
}

// CollectRuntimeStats reads the current runtime statistics.
func CollectRuntimeStats(startTime time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:      runtime.Version(),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		SysBytes:       mem.Sys,
		NumGC:          mem.NumGC,
		Uptime:         time.Since(startTime).Round(time.Second).String(),
	}
}
