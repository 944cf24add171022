package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oversightlabs/approval-service/config"
	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/internal/workflow"
	"github.com/oversightlabs/approval-service/middleware"
)

// NewRouter wires every route to its handler. /service stays public for
// health checks; everything else goes through service auth.
func NewRouter(engine *workflow.Engine, recorder *audit.Recorder, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.ServiceAuthMiddleware(h)
	}

	r.HandleFunc("/service", ServiceHandler(cfg)).Methods(http.MethodGet)

	r.HandleFunc("/users", auth(ListUsersHandler())).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", auth(GetUserHandler())).Methods(http.MethodGet)

	r.HandleFunc("/workflow/stages", auth(WorkflowStagesHandler())).Methods(http.MethodGet)

	r.HandleFunc("/projects", auth(CreateProjectHandler(engine))).Methods(http.MethodPost)
	r.HandleFunc("/projects", auth(ListProjectsHandler(engine))).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", auth(GetProjectHandler(engine))).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", auth(UpdateProjectHandler(engine))).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{id}/stage", auth(StageHandler(engine))).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}/advance", auth(AdvanceStageHandler(engine))).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/evidence", auth(AttachEvidenceHandler(engine))).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/evidence/{evidenceId}/verify", auth(VerifyEvidenceHandler(engine))).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/approvals", auth(RequestApprovalHandler(engine))).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}/approvals/{approvalId}/decision", auth(DecideApprovalHandler(engine))).Methods(http.MethodPost)

	r.HandleFunc("/dashboard/stats", auth(DashboardStatsHandler(engine))).Methods(http.MethodGet)

	r.HandleFunc("/roadmap", auth(GenerateRoadmapHandler(recorder))).Methods(http.MethodPost)

	r.HandleFunc("/audit", auth(AuditLogHandler(recorder))).Methods(http.MethodGet)
	r.HandleFunc("/audit/forms", auth(RecordFormHandler(recorder))).Methods(http.MethodPost)
	r.HandleFunc("/audit/chat", auth(RecordChatHandler(recorder))).Methods(http.MethodPost)

	return r
}
