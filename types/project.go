package types

import "time"

// ProjectStatus is the lifecycle status of a project under review.
type ProjectStatus string

const (
	StatusDraft           ProjectStatus = "draft"
	StatusInReview        ProjectStatus = "in_review"
	StatusPendingApproval ProjectStatus = "pending_approval"
	StatusApproved        ProjectStatus = "approved"
	StatusRejected        ProjectStatus = "rejected"
	StatusCompleted       ProjectStatus = "completed"
)

// ProjectStage identifies one step of the fixed, ordered review workflow.
type ProjectStage string

const (
	StageInitialAssessment ProjectStage = "initial_assessment"
	StageLegalReview       ProjectStage = "legal_review"
	StageTechnicalReview   ProjectStage = "technical_review"
	StageComplianceCheck   ProjectStage = "compliance_check"
	StageFinalApproval     ProjectStage = "final_approval"
	StageImplementation    ProjectStage = "implementation"
	StageMonitoring        ProjectStage = "monitoring"
)

// Priority is the project priority tier.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// EvidenceType is the closed set of artifact kinds that can back a review decision.
type EvidenceType string

const (
	EvidenceDocument      EvidenceType = "document"
	EvidenceLink          EvidenceType = "link"
	EvidenceScreenshot    EvidenceType = "screenshot"
	EvidenceCertification EvidenceType = "certification"
	EvidenceAssessment    EvidenceType = "assessment"
)

// Evidence is an uploaded or linked artifact attached to a project.
// Verification is a separate act from upload; a verified item is immutable.
type Evidence struct {
	ID          string       `json:"id"`
	Type        EvidenceType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category,omitempty"`
	URL         string       `json:"url,omitempty"`
	FilePath    string       `json:"filePath,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	UploadedBy  string       `json:"uploadedBy"`
	UploadedAt  time.Time    `json:"uploadedAt"`
	Verified    bool         `json:"verified"`
	VerifiedBy  string       `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time   `json:"verifiedAt,omitempty"`
}

// ApprovalStatus is the state of a single approval record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is a per-stage, per-approver decision record.
type Approval struct {
	ID          string         `json:"id"`
	ApproverID  string         `json:"approverId"`
	Stage       ProjectStage   `json:"stage"`
	Status      ApprovalStatus `json:"status"`
	Comments    string         `json:"comments,omitempty"`
	RequestedAt time.Time      `json:"requestedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Evidence    []string       `json:"evidence,omitempty"`
}

// AuditEntry is an immutable event record on a project's trail.
// Entries are never edited or removed after being appended.
type AuditEntry struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	UserID      string         `json:"userId"`
	Timestamp   time.Time      `json:"timestamp"`
	Details     map[string]any `json:"details,omitempty"`
	Stage       ProjectStage   `json:"stage,omitempty"`
}

// Project is the mutable unit under review.
type Project struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Status              ProjectStatus `json:"status"`
	Stage               ProjectStage  `json:"stage"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
	CreatedBy           string        `json:"createdBy"`
	AssignedUsers       []string      `json:"assignedUsers"`
	RequiredUsers       []string      `json:"requiredUsers"`
	Evidence            []Evidence    `json:"evidence"`
	Approvals           []Approval    `json:"approvals"`
	AuditTrail          []AuditEntry  `json:"auditTrail"`
	Tags                []string      `json:"tags"`
	Priority            Priority      `json:"priority"`
	EstimatedCompletion *time.Time    `json:"estimatedCompletion,omitempty"`
	ActualCompletion    *time.Time    `json:"actualCompletion,omitempty"`
}

// Clone returns a deep copy so callers can never mutate stored state in place.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.AssignedUsers = append([]string(nil), p.AssignedUsers...)
	cp.RequiredUsers = append([]string(nil), p.RequiredUsers...)
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Evidence = append([]Evidence(nil), p.Evidence...)
	for i := range cp.Evidence {
		cp.Evidence[i].VerifiedAt = copyTime(cp.Evidence[i].VerifiedAt)
	}
	cp.Approvals = append([]Approval(nil), p.Approvals...)
	for i := range cp.Approvals {
		cp.Approvals[i].CompletedAt = copyTime(cp.Approvals[i].CompletedAt)
		cp.Approvals[i].Evidence = append([]string(nil), cp.Approvals[i].Evidence...)
	}
	cp.AuditTrail = append([]AuditEntry(nil), p.AuditTrail...)
	for i := range cp.AuditTrail {
		cp.AuditTrail[i].Details = copyDetails(cp.AuditTrail[i].Details)
	}
	cp.EstimatedCompletion = copyTime(p.EstimatedCompletion)
	cp.ActualCompletion = copyTime(p.ActualCompletion)
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyDetails(d map[string]any) map[string]any {
	if d == nil {
		return nil
	}
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	Tags          []string `json:"tags"`
	CreatedBy     string   `json:"createdBy"`
	AssignedUsers []string `json:"assignedUsers"`
	RequiredUsers []string `json:"requiredUsers"`
}

// UpdateProjectRequest is the payload for mutating project metadata.
type UpdateProjectRequest struct {
	Status   *ProjectStatus `json:"status,omitempty"`
	Priority *Priority      `json:"priority,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	UserID   string         `json:"userId"`
}

// AdvanceStageRequest is the payload for moving a project to another stage.
// Strict opts into precondition checking before the stage is replaced.
type AdvanceStageRequest struct {
	TargetStage ProjectStage `json:"targetStage"`
	UserID      string       `json:"userId"`
	Strict      bool         `json:"strict,omitempty"`
}

// AttachEvidenceRequest is the payload for attaching evidence to a project.
// ImageData carries base64 image bytes for screenshot evidence.
type AttachEvidenceRequest struct {
	Type        EvidenceType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category,omitempty"`
	URL         string       `json:"url,omitempty"`
	FilePath    string       `json:"filePath,omitempty"`
	ImageData   string       `json:"imageData,omitempty"`
	UploadedBy  string       `json:"uploadedBy"`
}

// VerifyEvidenceRequest marks an evidence item as verified.
type VerifyEvidenceRequest struct {
	VerifiedBy string `json:"verifiedBy"`
}

// RequestApprovalRequest opens a pending approval for the project's
// current stage (or an explicit one).
type RequestApprovalRequest struct {
	ApproverID string       `json:"approverId"`
	Stage      ProjectStage `json:"stage,omitempty"`
	Evidence   []string     `json:"evidence,omitempty"`
}

// ApprovalDecisionRequest completes a pending approval.
type ApprovalDecisionRequest struct {
	Status   ApprovalStatus `json:"status"`
	Comments string         `json:"comments,omitempty"`
}
