package types

import "time"

// Complexity is the derived plan complexity tier.
type Complexity string

const (
	ComplexitySimple     Complexity = "simple"
	ComplexityModerate   Complexity = "moderate"
	ComplexityComplex    Complexity = "complex"
	ComplexityEnterprise Complexity = "enterprise"
)

// RiskLevel grades a roadmap gate.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// GateStatus is the lifecycle status of a roadmap gate.
type GateStatus string

const (
	GateNotStarted GateStatus = "not_started"
	GateInProgress GateStatus = "in_progress"
	GateCompleted  GateStatus = "completed"
	GateBlocked    GateStatus = "blocked"
)

// CheckpointStatus is the lifecycle status of a roadmap checkpoint.
type CheckpointStatus string

const (
	CheckpointPending    CheckpointStatus = "pending"
	CheckpointApproved   CheckpointStatus = "approved"
	CheckpointRejected   CheckpointStatus = "rejected"
	CheckpointNotStarted CheckpointStatus = "not_started"
)

// Availability is a resource's availability tier.
type Availability string

const (
	Available          Availability = "available"
	PartiallyAvailable Availability = "partially_available"
	Unavailable        Availability = "unavailable"
)

// RoadmapGate is one major phase of a generated plan.
// DependsOn is the array index of the predecessor gate (-1 for none);
// Dependencies is the name-keyed view derived from it for consumers.
type RoadmapGate struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Order             int        `json:"order"`
	EstimatedDuration int        `json:"estimatedDuration"`
	DependsOn         int        `json:"-"`
	Dependencies      []string   `json:"dependencies"`
	RequiredResources []string   `json:"requiredResources"`
	Deliverables      []string   `json:"deliverables"`
	SuccessCriteria   []string   `json:"successCriteria"`
	RiskLevel         RiskLevel  `json:"riskLevel"`
	Status            GateStatus `json:"status"`
}

// RoadmapCheckpoint is a deliverable-sized sub-unit of a gate.
type RoadmapCheckpoint struct {
	ID                string           `json:"id"`
	GateID            string           `json:"gateId"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Order             int              `json:"order"`
	EstimatedDuration int              `json:"estimatedDuration"`
	RequiredEvidence  []string         `json:"requiredEvidence"`
	Approvers         []string         `json:"approvers"`
	Status            CheckpointStatus `json:"status"`
}

// ContactInfo is how a recommended resource can be reached.
type ContactInfo struct {
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// RoadmapResource is a named person/role recommendation for a plan.
type RoadmapResource struct {
	ID                      string       `json:"id"`
	Name                    string       `json:"name"`
	Role                    string       `json:"role"`
	Department              string       `json:"department"`
	Expertise               []string     `json:"expertise"`
	Availability            Availability `json:"availability"`
	ContactInfo             ContactInfo  `json:"contactInfo"`
	EstimatedTimeCommitment int          `json:"estimatedTimeCommitment"`
}

// Budget is an estimated spend range.
type Budget struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// RoadmapPlan is the aggregate generation result. Plans are immutable
// once generated; regenerating yields entirely new identities.
type RoadmapPlan struct {
	ID                     string              `json:"id"`
	ProjectTitle           string              `json:"projectTitle"`
	ProjectDescription     string              `json:"projectDescription"`
	Industry               string              `json:"industry"`
	Complexity             Complexity          `json:"complexity"`
	EstimatedTotalDuration int                 `json:"estimatedTotalDuration"`
	EstimatedBudget        Budget              `json:"estimatedBudget"`
	Gates                  []RoadmapGate       `json:"gates"`
	Checkpoints            []RoadmapCheckpoint `json:"checkpoints"`
	Resources              []RoadmapResource   `json:"resources"`
	Risks                  []string            `json:"risks"`
	Assumptions            []string            `json:"assumptions"`
	CreatedAt              time.Time           `json:"createdAt"`
	UpdatedAt              time.Time           `json:"updatedAt"`
	CreatedBy              string              `json:"createdBy"`
}

// GenerateRoadmapRequest is the payload for roadmap generation.
type GenerateRoadmapRequest struct {
	Description string `json:"description"`
	Industry    string `json:"industry,omitempty"`
	RequestedBy string `json:"requestedBy,omitempty"`
}
