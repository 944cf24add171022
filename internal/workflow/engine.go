package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oversightlabs/approval-service/catalog"
	"github.com/oversightlabs/approval-service/internal/audit"
	"github.com/oversightlabs/approval-service/types"
	"github.com/oversightlabs/approval-service/utils"
)

// UnmetError reports which preconditions a strict advance still lacks.
type UnmetError struct {
	Unmet []types.UnmetRequirement
}

func (e *UnmetError) Error() string {
	return fmt.Sprintf("stage preconditions unmet: %d requirement(s)", len(e.Unmet))
}

// Engine validates and performs all project mutations. Writes are
// serialized per project id so the audit trail stays append-only and
// monotonic under concurrent callers.
type Engine struct {
	store    Store
	recorder *audit.Recorder

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewEngine creates an Engine on the given store. recorder may be nil;
// project trails are still written, only the service-wide log is skipped.
func NewEngine(store Store, recorder *audit.Recorder) *Engine {
	return &Engine{
		store:    store,
		recorder: recorder,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (e *Engine) projectLock(id string) *sync.Mutex {
	e.lockMu.Lock()
	defer e.lockMu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

func (e *Engine) record(category types.AuditCategory, action, description, userID string, details map[string]any) {
	if e.recorder != nil {
		e.recorder.Record(category, action, description, userID, details)
	}
}

// bump returns a timestamp strictly after prev, so updatedAt always
// moves forward even within one clock tick.
func bump(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// CreateProject constructs a draft project at the first catalog stage with
// a seeded audit trail. User ids are accepted unvalidated; unknown ids
// resolve to "Unknown" at display time.
func (e *Engine) CreateProject(ctx context.Context, req types.CreateProjectRequest) (*types.Project, error) {
	now := time.Now()
	priority := req.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}

	project := &types.Project{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Status:        types.StatusDraft,
		Stage:         catalog.InitialStage().ID,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     req.CreatedBy,
		AssignedUsers: append([]string(nil), req.AssignedUsers...),
		RequiredUsers: append([]string(nil), req.RequiredUsers...),
		Evidence:      []types.Evidence{},
		Approvals:     []types.Approval{},
		Tags:          append([]string(nil), req.Tags...),
		Priority:      priority,
		AuditTrail: []types.AuditEntry{{
			ID:          uuid.New().String(),
			Action:      "project_created",
			Description: fmt.Sprintf("Project created by %s", catalog.DisplayName(req.CreatedBy)),
			UserID:      req.CreatedBy,
			Timestamp:   now,
		}},
	}

	if err := e.store.Create(ctx, project); err != nil {
		return nil, err
	}

	e.record(types.AuditMonitoring, "project_created",
		fmt.Sprintf("Project %q created", project.Name), req.CreatedBy,
		map[string]any{"projectId": project.ID})
	return project, nil
}

// GetProject returns a copy of one project.
func (e *Engine) GetProject(ctx context.Context, id string) (*types.Project, error) {
	return e.store.Get(ctx, id)
}

// ListFilter narrows ListProjects. Zero values match everything.
type ListFilter struct {
	Status   types.ProjectStatus
	Stage    types.ProjectStage
	Priority types.Priority
	Tag      string
}

func (f ListFilter) matches(p *types.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Stage != "" && p.Stage != f.Stage {
		return false
	}
	if f.Priority != "" && p.Priority != f.Priority {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range p.Tags {
			if strings.EqualFold(t, f.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ListProjects returns copies of all projects matching the filter,
// ordered by creation time.
func (e *Engine) ListProjects(ctx context.Context, filter ListFilter) ([]*types.Project, error) {
	all, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Project, 0, len(all))
	for _, p := range all {
		if filter.matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CurrentStage resolves a project's stage against the catalog.
func (e *Engine) CurrentStage(ctx context.Context, id string) (types.WorkflowStage, error) {
	p, err := e.store.Get(ctx, id)
	if err != nil {
		return types.WorkflowStage{}, err
	}
	stage, ok := catalog.StageByID(p.Stage)
	if !ok {
		return types.WorkflowStage{}, ErrInvalidStage
	}
	return stage, nil
}

// NextStage returns the stage after the project's current one, or
// ErrNoNextStage when the project sits at the last catalog stage.
func (e *Engine) NextStage(ctx context.Context, id string) (types.WorkflowStage, error) {
	p, err := e.store.Get(ctx, id)
	if err != nil {
		return types.WorkflowStage{}, err
	}
	next, ok := catalog.NextStage(p.Stage)
	if !ok {
		return types.WorkflowStage{}, ErrNoNextStage
	}
	return next, nil
}

// CanAdvance lists the requirements of the project's current stage that
// are not yet satisfied: required approvers without an approved record
// for this stage, and required evidence categories without a verified
// item. An empty result means the stage is clear.
func (e *Engine) CanAdvance(p *types.Project) []types.UnmetRequirement {
	stage, ok := catalog.StageByID(p.Stage)
	if !ok {
		return []types.UnmetRequirement{{Kind: "stage", Stage: p.Stage, Detail: "unknown stage"}}
	}

	var unmet []types.UnmetRequirement
	for _, approver := range stage.RequiredApprovers {
		approved := false
		for _, a := range p.Approvals {
			if a.Stage == p.Stage && a.ApproverID == approver && a.Status == types.ApprovalApproved {
				approved = true
				break
			}
		}
		if !approved {
			unmet = append(unmet, types.UnmetRequirement{Kind: "approval", Stage: p.Stage, Detail: approver})
		}
	}
	for _, category := range stage.RequiredEvidence {
		present := false
		for _, ev := range p.Evidence {
			if ev.Category == category && ev.Verified {
				present = true
				break
			}
		}
		if !present {
			unmet = append(unmet, types.UnmetRequirement{Kind: "evidence", Stage: p.Stage, Detail: category})
		}
	}
	return unmet
}

// AdvanceStage replaces the project's stage with the target, bumps
// updatedAt and appends one audit entry tagged with the new stage.
// Advancement is gated only by the existence of a next stage; the strict
// flag additionally enforces the current stage's approver and evidence
// requirements and returns an *UnmetError when any are missing.
func (e *Engine) AdvanceStage(ctx context.Context, id string, req types.AdvanceStageRequest) (*types.Project, error) {
	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	target, ok := catalog.StageByID(req.TargetStage)
	if !ok {
		return nil, ErrInvalidStage
	}
	if _, ok := catalog.NextStage(p.Stage); !ok {
		return nil, ErrNoNextStage
	}
	if req.Strict {
		if unmet := e.CanAdvance(p); len(unmet) > 0 {
			return nil, &UnmetError{Unmet: unmet}
		}
	}

	now := bump(p.UpdatedAt)
	p.Stage = target.ID
	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "stage_advanced",
		Description: fmt.Sprintf("Project advanced to %s", target.Name),
		UserID:      req.UserID,
		Timestamp:   now,
		Stage:       target.ID,
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditMonitoring, "stage_advanced",
		fmt.Sprintf("Project %q advanced to %s", p.Name, target.Name), req.UserID,
		map[string]any{"projectId": p.ID, "stage": string(target.ID)})
	return p, nil
}

// UpdateProject applies status/priority/tag changes through whole-record
// replacement. Flipping status to completed stamps actualCompletion when
// it is not already set.
func (e *Engine) UpdateProject(ctx context.Context, id string, req types.UpdateProjectRequest) (*types.Project, error) {
	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := bump(p.UpdatedAt)
	var changes []string
	if req.Status != nil && *req.Status != p.Status {
		p.Status = *req.Status
		changes = append(changes, fmt.Sprintf("status to %s", *req.Status))
		if p.Status == types.StatusCompleted && p.ActualCompletion == nil {
			p.ActualCompletion = &now
		}
	}
	if req.Priority != nil && *req.Priority != p.Priority {
		p.Priority = *req.Priority
		changes = append(changes, fmt.Sprintf("priority to %s", *req.Priority))
	}
	if req.Tags != nil {
		p.Tags = append([]string(nil), req.Tags...)
		changes = append(changes, "tags")
	}
	if len(changes) == 0 {
		return p, nil
	}

	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "project_updated",
		Description: fmt.Sprintf("Updated %s", strings.Join(changes, ", ")),
		UserID:      req.UserID,
		Timestamp:   now,
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditMonitoring, "project_updated",
		fmt.Sprintf("Project %q updated", p.Name), req.UserID,
		map[string]any{"projectId": p.ID, "changes": changes})
	return p, nil
}

// AttachEvidence appends one evidence item. Screenshot uploads carrying
// image data get a server-side JPEG thumbnail.
func (e *Engine) AttachEvidence(ctx context.Context, id string, req types.AttachEvidenceRequest) (*types.Project, error) {
	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := bump(p.UpdatedAt)
	evidence := types.Evidence{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		FilePath:    req.FilePath,
		UploadedBy:  req.UploadedBy,
		UploadedAt:  now,
	}
	if req.Type == types.EvidenceScreenshot && req.ImageData != "" {
		if thumb, err := utils.ThumbnailJPEG(req.ImageData); err == nil {
			evidence.Thumbnail = thumb
		}
	}

	p.Evidence = append(p.Evidence, evidence)
	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "evidence_submitted",
		Description: fmt.Sprintf("Evidence %q submitted by %s", req.Title, catalog.DisplayName(req.UploadedBy)),
		UserID:      req.UploadedBy,
		Timestamp:   now,
		Details:     map[string]any{"evidenceId": evidence.ID, "type": string(req.Type)},
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditPrivacy, "evidence_submitted",
		fmt.Sprintf("Evidence %q submitted with %s", req.Title, req.Type), req.UploadedBy,
		map[string]any{"projectId": p.ID, "evidenceId": evidence.ID})
	return p, nil
}

// VerifyEvidence marks one evidence item verified. Verified evidence is
// immutable; a second verification is rejected.
func (e *Engine) VerifyEvidence(ctx context.Context, id, evidenceID string, req types.VerifyEvidenceRequest) (*types.Project, error) {
	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Evidence {
		if p.Evidence[i].ID == evidenceID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("evidence %s: %w", evidenceID, ErrNotFound)
	}
	if p.Evidence[idx].Verified {
		return nil, ErrEvidenceVerified
	}

	now := bump(p.UpdatedAt)
	p.Evidence[idx].Verified = true
	p.Evidence[idx].VerifiedBy = req.VerifiedBy
	p.Evidence[idx].VerifiedAt = &now
	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "evidence_verified",
		Description: fmt.Sprintf("Evidence %q verified by %s", p.Evidence[idx].Title, catalog.DisplayName(req.VerifiedBy)),
		UserID:      req.VerifiedBy,
		Timestamp:   now,
		Details:     map[string]any{"evidenceId": evidenceID},
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditPrivacy, "evidence_verified",
		fmt.Sprintf("Evidence %q verified", p.Evidence[idx].Title), req.VerifiedBy,
		map[string]any{"projectId": p.ID, "evidenceId": evidenceID})
	return p, nil
}

// RequestApproval opens a pending approval record. The stage defaults to
// the project's current stage.
func (e *Engine) RequestApproval(ctx context.Context, id string, req types.RequestApprovalRequest) (*types.Project, error) {
	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stage := req.Stage
	if stage == "" {
		stage = p.Stage
	}
	if _, ok := catalog.StageByID(stage); !ok {
		return nil, ErrInvalidStage
	}

	now := bump(p.UpdatedAt)
	approval := types.Approval{
		ID:          uuid.New().String(),
		ApproverID:  req.ApproverID,
		Stage:       stage,
		Status:      types.ApprovalPending,
		RequestedAt: now,
		Evidence:    append([]string(nil), req.Evidence...),
	}

	p.Approvals = append(p.Approvals, approval)
	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "approval_requested",
		Description: fmt.Sprintf("Approval requested from %s", catalog.DisplayName(req.ApproverID)),
		UserID:      req.ApproverID,
		Timestamp:   now,
		Stage:       stage,
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditCompliance, "approval_requested",
		fmt.Sprintf("Approval requested from %s on project %q", catalog.DisplayName(req.ApproverID), p.Name),
		req.ApproverID, map[string]any{"projectId": p.ID, "stage": string(stage)})
	return p, nil
}

// DecideApproval completes a pending approval with approved or rejected.
func (e *Engine) DecideApproval(ctx context.Context, id, approvalID string, req types.ApprovalDecisionRequest) (*types.Project, error) {
	if req.Status != types.ApprovalApproved && req.Status != types.ApprovalRejected {
		return nil, fmt.Errorf("decision must be approved or rejected, got %q", req.Status)
	}

	lock := e.projectLock(id)
	lock.Lock()
	defer lock.Unlock()

	p, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.Approvals {
		if p.Approvals[i].ID == approvalID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("approval %s: %w", approvalID, ErrNotFound)
	}
	if p.Approvals[idx].Status != types.ApprovalPending {
		return nil, ErrApprovalDecided
	}

	now := bump(p.UpdatedAt)
	p.Approvals[idx].Status = req.Status
	p.Approvals[idx].Comments = req.Comments
	p.Approvals[idx].CompletedAt = &now
	p.UpdatedAt = now
	p.AuditTrail = append(p.AuditTrail, types.AuditEntry{
		ID:          uuid.New().String(),
		Action:      "approval_" + string(req.Status),
		Description: fmt.Sprintf("%s %s the %s stage", catalog.DisplayName(p.Approvals[idx].ApproverID), req.Status, p.Approvals[idx].Stage),
		UserID:      p.Approvals[idx].ApproverID,
		Timestamp:   now,
		Stage:       p.Approvals[idx].Stage,
	})

	if err := e.store.Update(ctx, p); err != nil {
		return nil, err
	}

	e.record(types.AuditCompliance, "approval_decided",
		fmt.Sprintf("Approval %s on project %q", req.Status, p.Name),
		p.Approvals[idx].ApproverID, map[string]any{"projectId": p.ID, "approvalId": approvalID, "status": string(req.Status)})
	return p, nil
}

// DashboardStats folds the full project collection into aggregate counts.
// Every catalog stage appears in the breakdown, zero counts included.
// completedThisMonth prefers actualCompletion and falls back to updatedAt
// for completed projects that never got an explicit completion stamp.
func (e *Engine) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	projects, err := e.store.List(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := types.DashboardStats{
		StageBreakdown: make(map[types.ProjectStage]int),
	}
	for _, s := range catalog.Stages() {
		stats.StageBreakdown[s.ID] = 0
	}

	for _, p := range projects {
		stats.TotalProjects++
		switch p.Status {
		case types.StatusDraft, types.StatusInReview, types.StatusPendingApproval:
			stats.ActiveProjects++
		}
		if p.Status == types.StatusPendingApproval {
			stats.PendingApprovals++
		}
		if p.Status == types.StatusCompleted {
			completed := p.UpdatedAt
			if p.ActualCompletion != nil {
				completed = *p.ActualCompletion
			}
			if !completed.Before(monthStart) {
				stats.CompletedThisMonth++
			}
		}
		stats.StageBreakdown[p.Stage]++
	}
	return stats, nil
}
