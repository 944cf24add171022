package types

// WorkflowStage is one catalog entry of the fixed, ordered review workflow.
type WorkflowStage struct {
	ID                ProjectStage `json:"id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	Description       string       `json:"description" yaml:"description"`
	RequiredApprovers []string     `json:"requiredApprovers" yaml:"required_approvers"`
	RequiredEvidence  []string     `json:"requiredEvidence" yaml:"required_evidence"`
	EstimatedDuration int          `json:"estimatedDuration" yaml:"estimated_duration"`
	CanAdvance        bool         `json:"canAdvance" yaml:"can_advance"`
	CanRevert         bool         `json:"canRevert" yaml:"can_revert"`
}

// DashboardStats aggregates the full project collection.
// StageBreakdown carries one entry per catalog stage, zero counts included.
type DashboardStats struct {
	TotalProjects      int                  `json:"totalProjects"`
	ActiveProjects     int                  `json:"activeProjects"`
	PendingApprovals   int                  `json:"pendingApprovals"`
	CompletedThisMonth int                  `json:"completedThisMonth"`
	StageBreakdown     map[ProjectStage]int `json:"stageBreakdown"`
}

// UnmetRequirement names one precondition the current stage still lacks.
type UnmetRequirement struct {
	Kind   string       `json:"kind"` // "approval" or "evidence"
	Stage  ProjectStage `json:"stage"`
	Detail string       `json:"detail"`
}
