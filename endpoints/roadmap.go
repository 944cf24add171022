package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/internal/roadmap"
	"github.com/oversightlabs/approval-service/types"
)

// GenerateRoadmapHandler builds a stage-gated compliance roadmap from a
// free-text project description.
func GenerateRoadmapHandler(recorder *audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRoadmapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}

		plan, err := roadmap.Generate(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if recorder != nil {
			recorder.Record(types.AuditMonitoring, "roadmap_generated",
				"Roadmap generated: "+plan.ProjectTitle, plan.CreatedBy, map[string]any{
					"planId":     plan.ID,
					"industry":   plan.Industry,
					"complexity": plan.Complexity,
				})
		}

		writeJSON(w, http.StatusCreated, plan)
	}
}
