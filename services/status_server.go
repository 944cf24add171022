package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/oversightlabs/approval-service/types"
)

// StatsSource supplies the project aggregates the status endpoint reports.
type StatsSource interface {
	DashboardStats(ctx context.Context) (types.DashboardStats, error)
}

// StatusServer provides an HTTP status endpoint for ops tooling, on a
// separate port from the main API so it stays reachable under load.
type StatusServer struct {
	startTime time.Time
	port      int
	version   string
	source    StatsSource
}

// NewStatusServer creates a new status server instance
func NewStatusServer(port int, version string, source StatsSource) *StatusServer {
	return &StatusServer{
		startTime: time.Now(),
		port:      port,
		version:   version,
		source:    source,
	}
}

// Start begins the HTTP status server
func (ss *StatusServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", ss.handleStatus)
	mux.HandleFunc("/health", ss.handleHealth)

	addr := fmt.Sprintf(":%d", ss.port)
	log.Printf("[STATUS] Starting status server on 0.0.0.0:%d", ss.port)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("[STATUS] Server error: %v", err)
		}
	}()

	return nil
}

// handleStatus returns detailed service status
func (ss *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(ss.startTime)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := map[string]interface{}{
		"service":   "approval-service",
		"status":    "OK",
		"version":   ss.version,
		"uptime":    int(uptime.Seconds()),
		"timestamp": time.Now().Unix(),
		"metrics": map[string]interface{}{
			"goroutines":      runtime.NumGoroutine(),
			"memory_alloc_mb": float64(m.Alloc) / 1024 / 1024,
			"memory_total_mb": float64(m.TotalAlloc) / 1024 / 1024,
			"memory_sys_mb":   float64(m.Sys) / 1024 / 1024,
			"gc_runs":         m.NumGC,
		},
	}

	if ss.source != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if stats, err := ss.source.DashboardStats(ctx); err == nil {
			status["projects"] = map[string]interface{}{
				"total":                stats.TotalProjects,
				"active":               stats.ActiveProjects,
				"pending_approvals":    stats.PendingApprovals,
				"completed_this_month": stats.CompletedThisMonth,
			}
		} else {
			status["status"] = "DEGRADED"
			status["store_error"] = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("[STATUS] Error encoding status: %v", err)
	}
}

// handleHealth returns simple health check
func (ss *StatusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "OK",
	}); err != nil {
		log.Printf("[STATUS] Error encoding health check: %v", err)
	}
}
