package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oversightlabs/approval-service/internal/workflow"
	"github.com/oversightlabs/approval-service/types"
)

// CreateProjectHandler registers a new project in the draft state.
func CreateProjectHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" || req.Description == "" {
			http.Error(w, "name and description are required", http.StatusBadRequest)
			return
		}

		project, err := engine.CreateProject(r.Context(), req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, project)
	}
}

// ListProjectsHandler lists projects, optionally narrowed by the
// status/stage/priority/tag query parameters.
func ListProjectsHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := workflow.ListFilter{
			Status:   types.ProjectStatus(q.Get("status")),
			Stage:    types.ProjectStage(q.Get("stage")),
			Priority: types.Priority(q.Get("priority")),
			Tag:      q.Get("tag"),
		}

		projects, err := engine.ListProjects(r.Context(), filter)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, projects)
	}
}

// GetProjectHandler returns a single project by id.
func GetProjectHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := engine.GetProject(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, project)
	}
}

// UpdateProjectHandler applies a partial update to status, priority or tags.
func UpdateProjectHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		project, err := engine.UpdateProject(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, project)
	}
}

// StageHandler reports the project's current stage, the stage after it,
// and any requirements still blocking a strict advance.
func StageHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		project, err := engine.GetProject(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		current, err := engine.CurrentStage(r.Context(), id)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		body := map[string]any{
			"current":           current,
			"unmetRequirements": engine.CanAdvance(project),
		}
		if next, err := engine.NextStage(r.Context(), id); err == nil {
			body["next"] = next
		}

		writeJSON(w, http.StatusOK, body)
	}
}

// AdvanceStageHandler moves a project to the next workflow stage.
func AdvanceStageHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AdvanceStageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		project, err := engine.AdvanceStage(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, project)
	}
}

// AttachEvidenceHandler adds an evidence item to a project.
func AttachEvidenceHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AttachEvidenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Title == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}

		project, err := engine.AttachEvidence(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, project)
	}
}

// VerifyEvidenceHandler marks an evidence item as verified. Verification
// is one-way; a second verify returns 409.
func VerifyEvidenceHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		var req types.VerifyEvidenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		project, err := engine.VerifyEvidence(r.Context(), vars["id"], vars["evidenceId"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, project)
	}
}

// RequestApprovalHandler opens a pending approval for a project stage.
func RequestApprovalHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RequestApprovalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.ApproverID == "" {
			http.Error(w, "approverId is required", http.StatusBadRequest)
			return
		}

		project, err := engine.RequestApproval(r.Context(), mux.Vars(r)["id"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, project)
	}
}

// DecideApprovalHandler records an approve or reject decision on a
// pending approval.
func DecideApprovalHandler(engine *workflow.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		var req types.ApprovalDecisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		project, err := engine.DecideApproval(r.Context(), vars["id"], vars["approvalId"], req)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, project)
	}
}
