package endpoints

import (
	"net/http"

	"github.com/oversightlabs/approval-service/internal/workflow"
)

// DashboardStatsHandler aggregates project counts for the overview page.
func DashboardStatsHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.DashboardStats(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
