package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oversightlabs/approval-service/catalog"
	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/types"
)

func newTestEngine() *Engine {
	return NewEngine(NewMemoryStore(), audit.NewRecorder(nil))
}

func createTestProject(t *testing.T, e *Engine) *types.Project {
	t.Helper()
	p, err := e.CreateProject(context.Background(), types.CreateProjectRequest{
		Name:          "AI-Powered Customer Service Bot",
		Description:   "Implementation of an AI chatbot for customer service automation",
		Priority:      types.PriorityHigh,
		Tags:          []string{"AI", "Automation"},
		CreatedBy:     "2",
		AssignedUsers: []string{"2", "1"},
		RequiredUsers: []string{"1", "3"},
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	return p
}

func TestCreateProject(t *testing.T) {
	e := newTestEngine()
	p := createTestProject(t, e)

	assert.Equal(t, types.StatusDraft, p.Status)
	assert.Equal(t, types.StageInitialAssessment, p.Stage)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.UpdatedAt.Before(p.CreatedAt))

	if assert.Len(t, p.AuditTrail, 1) {
		assert.Equal(t, "project_created", p.AuditTrail[0].Action)
		assert.Equal(t, "Project created by Mike Chen", p.AuditTrail[0].Description)
	}
}

func TestCreateProject_UnknownCreatorAccepted(t *testing.T) {
	e := newTestEngine()

	p, err := e.CreateProject(context.Background(), types.CreateProjectRequest{
		Name:      "Shadow project",
		CreatedBy: "does-not-exist",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Project created by Unknown", p.AuditTrail[0].Description)
}

func TestGetProject_NotFound(t *testing.T) {
	e := newTestEngine()

	_, err := e.GetProject(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceStage(t *testing.T) {
	e := newTestEngine()
	p := createTestProject(t, e)
	before := p.UpdatedAt
	trailLen := len(p.AuditTrail)

	advanced, err := e.AdvanceStage(context.Background(), p.ID, types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
	})

	assert.NoError(t, err)
	assert.Equal(t, types.StageLegalReview, advanced.Stage)
	assert.True(t, advanced.UpdatedAt.After(before), "updatedAt must strictly increase")

	if assert.Len(t, advanced.AuditTrail, trailLen+1) {
		last := advanced.AuditTrail[trailLen]
		assert.Equal(t, "stage_advanced", last.Action)
		assert.Equal(t, types.StageLegalReview, last.Stage)
		// Prior trail is untouched: append-only.
		assert.Equal(t, p.AuditTrail[0].ID, advanced.AuditTrail[0].ID)
	}
}

func TestAdvanceStage_NotFound(t *testing.T) {
	e := newTestEngine()

	_, err := e.AdvanceStage(context.Background(), "missing", types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceStage_InvalidTarget(t *testing.T) {
	e := newTestEngine()
	p := createTestProject(t, e)

	_, err := e.AdvanceStage(context.Background(), p.ID, types.AdvanceStageRequest{
		TargetStage: types.ProjectStage("warp_drive"),
		UserID:      "3",
	})

	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestAdvanceStage_TerminalStage(t *testing.T) {
	e := newTestEngine()
	p := createTestProject(t, e)

	// Walk the project onto the last stage.
	_, err := e.AdvanceStage(context.Background(), p.ID, types.AdvanceStageRequest{
		TargetStage: types.StageMonitoring,
		UserID:      "3",
	})
	assert.NoError(t, err)

	_, err = e.AdvanceStage(context.Background(), p.ID, types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
	})
	assert.ErrorIs(t, err, ErrNoNextStage)
}

func TestAdvanceStage_StrictBlocksOnUnmetRequirements(t *testing.T) {
	e := newTestEngine()
	p := createTestProject(t, e)

	_, err := e.AdvanceStage(context.Background(), p.ID, types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
		Strict:      true,
	})

	var unmet *UnmetError
	if assert.ErrorAs(t, err, &unmet) {
		// initial_assessment needs one approver and two evidence categories.
		assert.Len(t, unmet.Unmet, 3)
	}
}

func TestAdvanceStage_StrictPassesWhenRequirementsMet(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	stage, _ := catalog.StageByID(p.Stage)
	for _, category := range stage.RequiredEvidence {
		_, err := e.AttachEvidence(ctx, p.ID, types.AttachEvidenceRequest{
			Type:       types.EvidenceDocument,
			Title:      category,
			Category:   category,
			UploadedBy: "2",
		})
		assert.NoError(t, err)
	}
	p, err := e.GetProject(ctx, p.ID)
	assert.NoError(t, err)
	for _, ev := range p.Evidence {
		_, err := e.VerifyEvidence(ctx, p.ID, ev.ID, types.VerifyEvidenceRequest{VerifiedBy: "3"})
		assert.NoError(t, err)
	}
	for _, approver := range stage.RequiredApprovers {
		p, err = e.RequestApproval(ctx, p.ID, types.RequestApprovalRequest{ApproverID: approver})
		assert.NoError(t, err)
		approvalID := p.Approvals[len(p.Approvals)-1].ID
		_, err = e.DecideApproval(ctx, p.ID, approvalID, types.ApprovalDecisionRequest{Status: types.ApprovalApproved})
		assert.NoError(t, err)
	}

	advanced, err := e.AdvanceStage(ctx, p.ID, types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
		Strict:      true,
	})

	assert.NoError(t, err)
	assert.Equal(t, types.StageLegalReview, advanced.Stage)
}

func TestAttachAndVerifyEvidence(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	p, err := e.AttachEvidence(ctx, p.ID, types.AttachEvidenceRequest{
		Type:        types.EvidenceDocument,
		Title:       "Project Scope Document",
		Description: "Detailed project scope and requirements",
		Category:    "project_scope",
		UploadedBy:  "2",
	})
	assert.NoError(t, err)
	if !assert.Len(t, p.Evidence, 1) {
		return
	}
	ev := p.Evidence[0]
	assert.False(t, ev.Verified)

	p, err = e.VerifyEvidence(ctx, p.ID, ev.ID, types.VerifyEvidenceRequest{VerifiedBy: "3"})
	assert.NoError(t, err)
	assert.True(t, p.Evidence[0].Verified)
	assert.Equal(t, "3", p.Evidence[0].VerifiedBy)
	assert.NotNil(t, p.Evidence[0].VerifiedAt)

	// Verified evidence is sealed.
	_, err = e.VerifyEvidence(ctx, p.ID, ev.ID, types.VerifyEvidenceRequest{VerifiedBy: "4"})
	assert.ErrorIs(t, err, ErrEvidenceVerified)
}

func TestApprovalLineage(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	p, err := e.RequestApproval(ctx, p.ID, types.RequestApprovalRequest{ApproverID: "3"})
	assert.NoError(t, err)
	if !assert.Len(t, p.Approvals, 1) {
		return
	}
	assert.Equal(t, types.ApprovalPending, p.Approvals[0].Status)
	assert.Equal(t, p.Stage, p.Approvals[0].Stage)

	p, err = e.DecideApproval(ctx, p.ID, p.Approvals[0].ID, types.ApprovalDecisionRequest{
		Status:   types.ApprovalApproved,
		Comments: "Scope looks sound",
	})
	assert.NoError(t, err)
	assert.Equal(t, types.ApprovalApproved, p.Approvals[0].Status)
	assert.NotNil(t, p.Approvals[0].CompletedAt)

	_, err = e.DecideApproval(ctx, p.ID, p.Approvals[0].ID, types.ApprovalDecisionRequest{Status: types.ApprovalRejected})
	assert.ErrorIs(t, err, ErrApprovalDecided)
}

func TestDecideApproval_RejectsPendingStatus(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)
	p, _ = e.RequestApproval(ctx, p.ID, types.RequestApprovalRequest{ApproverID: "3"})

	_, err := e.DecideApproval(ctx, p.ID, p.Approvals[0].ID, types.ApprovalDecisionRequest{Status: types.ApprovalPending})

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestUpdateProject_CompletionStampsActualCompletion(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	completed := types.StatusCompleted
	p, err := e.UpdateProject(ctx, p.ID, types.UpdateProjectRequest{Status: &completed, UserID: "3"})

	assert.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, p.Status)
	assert.NotNil(t, p.ActualCompletion)
}

func TestDashboardStats(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	p1 := createTestProject(t, e)
	p2 := createTestProject(t, e)
	createTestProject(t, e)

	pending := types.StatusPendingApproval
	_, err := e.UpdateProject(ctx, p1.ID, types.UpdateProjectRequest{Status: &pending, UserID: "3"})
	assert.NoError(t, err)

	completed := types.StatusCompleted
	_, err = e.UpdateProject(ctx, p2.ID, types.UpdateProjectRequest{Status: &completed, UserID: "3"})
	assert.NoError(t, err)

	_, err = e.AdvanceStage(ctx, p1.ID, types.AdvanceStageRequest{TargetStage: types.StageLegalReview, UserID: "3"})
	assert.NoError(t, err)

	stats, err := e.DashboardStats(ctx)
	assert.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProjects)
	assert.Equal(t, 2, stats.ActiveProjects) // draft + pending_approval
	assert.Equal(t, 1, stats.PendingApprovals)
	assert.Equal(t, 1, stats.CompletedThisMonth)

	// One histogram entry per catalog stage, zero counts included,
	// values summing to the total.
	assert.Len(t, stats.StageBreakdown, len(catalog.Stages()))
	sum := 0
	for _, n := range stats.StageBreakdown {
		sum += n
	}
	assert.Equal(t, stats.TotalProjects, sum)
	assert.Equal(t, 1, stats.StageBreakdown[types.StageLegalReview])
	assert.Equal(t, 0, stats.StageBreakdown[types.StageMonitoring])
}

func TestListProjects_Filter(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p1 := createTestProject(t, e)
	createTestProject(t, e)

	pending := types.StatusPendingApproval
	_, err := e.UpdateProject(ctx, p1.ID, types.UpdateProjectRequest{Status: &pending, UserID: "3"})
	assert.NoError(t, err)

	byStatus, err := e.ListProjects(ctx, ListFilter{Status: types.StatusPendingApproval})
	assert.NoError(t, err)
	assert.Len(t, byStatus, 1)

	byTag, err := e.ListProjects(ctx, ListFilter{Tag: "ai"})
	assert.NoError(t, err)
	assert.Len(t, byTag, 2)

	all, err := e.ListProjects(ctx, ListFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNextStage_TerminalUndefined(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	next, err := e.NextStage(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.StageLegalReview, next.ID)

	_, err = e.AdvanceStage(ctx, p.ID, types.AdvanceStageRequest{TargetStage: types.StageMonitoring, UserID: "3"})
	assert.NoError(t, err)

	_, err = e.NextStage(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNoNextStage)
}

func TestStoreIsolation_ReturnedProjectIsACopy(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	p := createTestProject(t, e)

	p.Name = "mutated locally"
	p.AuditTrail[0].Description = "tampered"

	fresh, err := e.GetProject(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "AI-Powered Customer Service Bot", fresh.Name)
	assert.Equal(t, "Project created by Mike Chen", fresh.AuditTrail[0].Description)
}
