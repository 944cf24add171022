package endpoints

import (
	"net/http"

	"github.com/oversightlabs/approval-service/config"
	"github.com/oversightlabs/approval-service/utils"
)

// ServiceHandler provides a comprehensive status report for the service.
// It is public so load balancers and the portal can health-check it.
func ServiceHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := utils.ServiceReport{
			Version: utils.GetVersion(),
			Health:  utils.GetHealth(),
			Metrics: utils.GetMetrics(),
		}
		if cfg != nil {
			report.Config = cfg.GetSanitized()
		}

		status := http.StatusOK
		if report.Health.Status != "OK" {
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, report)
	}
}
