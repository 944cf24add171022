package endpoints

import (
	"net/http"

	"github.com/oversightlabs/approval-service/catalog"
)

// WorkflowStagesHandler returns the ordered stage catalog the frontend
// renders the pipeline from.
func WorkflowStagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Stages())
	}
}
