// Package catalog holds the static reference data for the service: the
// ordered review workflow stages, the reviewer roster and the per-industry
// roadmap templates. Everything is embedded YAML parsed once at startup.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oversightlabs/approval-service/types"
)

//go:embed stages.yaml users.yaml templates.yaml
var dataFS embed.FS

// DefaultIndustry is the closed-world fallback for unrecognized industry keys.
const DefaultIndustry = "technology"

// GateTemplate is one phase definition inside an industry template.
type GateTemplate struct {
	Name              string          `yaml:"name"`
	Description       string          `yaml:"description"`
	EstimatedDuration int             `yaml:"estimated_duration"`
	Deliverables      []string        `yaml:"deliverables"`
	SuccessCriteria   []string        `yaml:"success_criteria"`
	RiskLevel         types.RiskLevel `yaml:"risk_level"`
}

// ResourceTemplate is one recommended person/role inside an industry template.
type ResourceTemplate struct {
	Name           string             `yaml:"name"`
	Role           string             `yaml:"role"`
	Department     string             `yaml:"department"`
	Expertise      []string           `yaml:"expertise"`
	Availability   types.Availability `yaml:"availability"`
	Email          string             `yaml:"email"`
	TimeCommitment int                `yaml:"time_commitment"`
}

// IndustryTemplate is the full gate/resource/risk roster for one industry.
type IndustryTemplate struct {
	Gates       []GateTemplate     `yaml:"gates"`
	Resources   []ResourceTemplate `yaml:"resources"`
	Risks       []string           `yaml:"risks"`
	Assumptions []string           `yaml:"assumptions"`
}

var (
	loadOnce   sync.Once
	stages     []types.WorkflowStage
	stageIndex map[types.ProjectStage]int
	users      []types.User
	userIndex  map[string]int
	templates  map[string]IndustryTemplate
)

func load() {
	loadOnce.Do(func() {
		mustUnmarshal("stages.yaml", &stages)
		mustUnmarshal("users.yaml", &users)
		mustUnmarshal("templates.yaml", &templates)

		stageIndex = make(map[types.ProjectStage]int, len(stages))
		for i, s := range stages {
			stageIndex[s.ID] = i
		}
		userIndex = make(map[string]int, len(users))
		for i, u := range users {
			userIndex[u.ID] = i
		}

		if _, ok := templates[DefaultIndustry]; !ok {
			panic(fmt.Sprintf("catalog: default industry %q missing from templates.yaml", DefaultIndustry))
		}
	})
}

func mustUnmarshal(name string, out any) {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("catalog: read %s: %v", name, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("catalog: parse %s: %v", name, err))
	}
}

// Stages returns the workflow stages in their fixed total order.
func Stages() []types.WorkflowStage {
	load()
	out := make([]types.WorkflowStage, len(stages))
	copy(out, stages)
	return out
}

// InitialStage returns the first stage of the workflow.
func InitialStage() types.WorkflowStage {
	load()
	return stages[0]
}

// StageByID looks up a stage by identifier.
func StageByID(id types.ProjectStage) (types.WorkflowStage, bool) {
	load()
	i, ok := stageIndex[id]
	if !ok {
		return types.WorkflowStage{}, false
	}
	return stages[i], true
}

// NextStage returns the stage following id in the total order. The second
// return is false when id is unknown or already the last stage.
func NextStage(id types.ProjectStage) (types.WorkflowStage, bool) {
	load()
	i, ok := stageIndex[id]
	if !ok || i == len(stages)-1 {
		return types.WorkflowStage{}, false
	}
	return stages[i+1], true
}

// Users returns the reviewer roster.
func Users() []types.User {
	load()
	out := make([]types.User, len(users))
	copy(out, users)
	return out
}

// UserByID looks up a roster member.
func UserByID(id string) (types.User, bool) {
	load()
	i, ok := userIndex[id]
	if !ok {
		return types.User{}, false
	}
	return users[i], true
}

// UsersByRole filters the roster by role.
func UsersByRole(role types.UserRole) []types.User {
	load()
	var out []types.User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// DisplayName resolves a user id to a name for audit descriptions.
// Unknown ids are display-resolved, never rejected.
func DisplayName(id string) string {
	if u, ok := UserByID(id); ok {
		return u.Name
	}
	return "Unknown"
}

// Template returns the template for an industry key, falling back to the
// technology template for any unrecognized key.
func Template(industry string) IndustryTemplate {
	load()
	if t, ok := templates[industry]; ok {
		return t
	}
	return templates[DefaultIndustry]
}

// Industries lists the known industry keys.
func Industries() []string {
	load()
	out := make([]string, 0, len(templates))
	for k := range templates {
		out = append(out, k)
	}
	return out
}
