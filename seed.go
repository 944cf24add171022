package main

import (
	"context"
	"fmt"

	"github.com/oversightlabs/approval-service/internal/workflow"
	"github.com/oversightlabs/approval-service/types"
)

// SeedSampleProjects loads two demo projects through the engine so a
// fresh instance has a populated dashboard. Running everything through
// the normal operations keeps the audit trails consistent.
func SeedSampleProjects(ctx context.Context, engine *workflow.Engine) error {
	bot, err := engine.CreateProject(ctx, types.CreateProjectRequest{
		Name:          "AI-Powered Customer Service Bot",
		Description:   "Implementation of an AI chatbot for customer service automation",
		Priority:      types.PriorityHigh,
		Tags:          []string{"AI", "Customer Service", "Automation"},
		CreatedBy:     "2",
		AssignedUsers: []string{"2", "1"},
		RequiredUsers: []string{"1", "3"},
	})
	if err != nil {
		return fmt.Errorf("seed chatbot project: %w", err)
	}

	bot, err = engine.AttachEvidence(ctx, bot.ID, types.AttachEvidenceRequest{
		Type:        types.EvidenceDocument,
		Title:       "Project Scope Document",
		Description: "Detailed project scope and requirements",
		Category:    "project_charter",
		UploadedBy:  "2",
	})
	if err != nil {
		return err
	}
	if bot, err = engine.VerifyEvidence(ctx, bot.ID, bot.Evidence[0].ID, types.VerifyEvidenceRequest{
		VerifiedBy: "3",
	}); err != nil {
		return err
	}

	if bot, err = engine.RequestApproval(ctx, bot.ID, types.RequestApprovalRequest{
		ApproverID: "3",
		Stage:      types.StageInitialAssessment,
	}); err != nil {
		return err
	}
	if bot, err = engine.DecideApproval(ctx, bot.ID, bot.Approvals[0].ID, types.ApprovalDecisionRequest{
		Status: types.ApprovalApproved,
	}); err != nil {
		return err
	}

	if _, err = engine.AdvanceStage(ctx, bot.ID, types.AdvanceStageRequest{
		TargetStage: types.StageLegalReview,
		UserID:      "3",
	}); err != nil {
		return err
	}
	inReview := types.StatusInReview
	if _, err = engine.UpdateProject(ctx, bot.ID, types.UpdateProjectRequest{
		Status: &inReview,
		UserID: "2",
	}); err != nil {
		return err
	}

	platform, err := engine.CreateProject(ctx, types.CreateProjectRequest{
		Name:          "Data Analytics Platform",
		Description:   "Enterprise data analytics platform with ML capabilities",
		Priority:      types.PriorityCritical,
		Tags:          []string{"Analytics", "ML", "Data"},
		CreatedBy:     "2",
		AssignedUsers: []string{"2", "4"},
		RequiredUsers: []string{"1", "3", "4"},
	})
	if err != nil {
		return fmt.Errorf("seed analytics project: %w", err)
	}

	platform, err = engine.AttachEvidence(ctx, platform.ID, types.AttachEvidenceRequest{
		Type:        types.EvidenceDocument,
		Title:       "Technical Architecture",
		Description: "Technical architecture and security assessment",
		Category:    "architecture_review",
		UploadedBy:  "2",
	})
	if err != nil {
		return err
	}
	if platform, err = engine.VerifyEvidence(ctx, platform.ID, platform.Evidence[0].ID, types.VerifyEvidenceRequest{
		VerifiedBy: "3",
	}); err != nil {
		return err
	}

	// The platform is already three stages in, with an approval per stage.
	stageApprovers := []struct {
		stage    types.ProjectStage
		approver string
	}{
		{types.StageInitialAssessment, "3"},
		{types.StageLegalReview, "1"},
		{types.StageTechnicalReview, "2"},
	}
	for _, sa := range stageApprovers {
		if platform, err = engine.RequestApproval(ctx, platform.ID, types.RequestApprovalRequest{
			ApproverID: sa.approver,
			Stage:      sa.stage,
		}); err != nil {
			return err
		}
		last := platform.Approvals[len(platform.Approvals)-1]
		if platform, err = engine.DecideApproval(ctx, platform.ID, last.ID, types.ApprovalDecisionRequest{
			Status: types.ApprovalApproved,
		}); err != nil {
			return err
		}
	}

	for _, stage := range []types.ProjectStage{
		types.StageLegalReview,
		types.StageTechnicalReview,
		types.StageComplianceCheck,
	} {
		if platform, err = engine.AdvanceStage(ctx, platform.ID, types.AdvanceStageRequest{
			TargetStage: stage,
			UserID:      "3",
		}); err != nil {
			return err
		}
	}
	pending := types.StatusPendingApproval
	if _, err = engine.UpdateProject(ctx, platform.ID, types.UpdateProjectRequest{
		Status: &pending,
		UserID: "2",
	}); err != nil {
		return err
	}

	return nil
}
