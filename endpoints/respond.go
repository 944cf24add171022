package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oversightlabs/approval-service/internal/workflow"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeEngineError maps engine sentinels onto HTTP status codes. A strict
// advance that fails its preconditions returns 409 with the unmet list so
// the frontend can render what is still missing.
func writeEngineError(w http.ResponseWriter, err error) {
	var unmet *workflow.UnmetError
	if errors.As(err, &unmet) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":             unmet.Error(),
			"unmetRequirements": unmet.Unmet,
		})
		return
	}

	switch {
	case errors.Is(err, workflow.ErrNotFound):
		http.Error(w, "Project not found", http.StatusNotFound)
	case errors.Is(err, workflow.ErrInvalidStage):
		http.Error(w, "Invalid stage", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrNoNextStage),
		errors.Is(err, workflow.ErrEvidenceVerified),
		errors.Is(err, workflow.ErrApprovalDecided):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
