// Package roadmap derives structured project plans from a free-text
// description and an industry key. Generation is deterministic: given the
// same inputs, everything but ids and timestamps is reproducible.
package roadmap

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oversightlabs/approval-service/catalog"
	"github.com/oversightlabs/approval-service/types"
)

// complexKeywords flags regulatory/AI territory. Substring matching is
// deliberate: "clinical trial" and "ML pipeline" both hit.
var complexKeywords = regexp.MustCompile(`(?i)drug|clinical|fda|regulatory|ai|ml|machine learning|artificial intelligence`)

var dailyRates = map[types.Complexity]types.Budget{
	types.ComplexitySimple:     {Min: 500, Max: 1000},
	types.ComplexityModerate:   {Min: 1000, Max: 2000},
	types.ComplexityComplex:    {Min: 2000, Max: 5000},
	types.ComplexityEnterprise: {Min: 5000, Max: 15000},
}

var commonRisks = []string{
	"Resource availability and team capacity",
	"Timeline delays due to dependencies",
	"Budget overruns and scope creep",
	"Technical challenges and integration issues",
}

var complexityRisks = map[types.Complexity][]string{
	types.ComplexityEnterprise: {
		"Stakeholder alignment and communication",
		"Cross-functional coordination challenges",
		"Risk of project failure due to scale",
	},
	types.ComplexityComplex: {
		"Technical complexity and integration challenges",
		"Resource allocation and skill gaps",
	},
}

var commonAssumptions = []string{
	"Adequate budget and resources will be available",
	"Stakeholder support and commitment will be maintained",
	"Technology and tools will function as expected",
}

// Generate assembles a RoadmapPlan from the industry template selected by
// req.Industry (unrecognized keys silently use the technology template).
// The context is honored between derivation phases so a caller can cancel
// a long generation.
func Generate(ctx context.Context, req types.GenerateRoadmapRequest) (*types.RoadmapPlan, error) {
	industry := req.Industry
	if industry == "" {
		industry = catalog.DefaultIndustry
	}
	template := catalog.Template(industry)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gates := buildGates(template.Gates)
	checkpoints := buildCheckpoints(gates)
	resources := buildResources(template.Resources)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totalDuration := 0
	for _, g := range gates {
		totalDuration += g.EstimatedDuration
	}
	complexity := Classify(req.Description, totalDuration)

	createdBy := req.RequestedBy
	if createdBy == "" {
		createdBy = "system"
	}

	now := time.Now()
	return &types.RoadmapPlan{
		ID:                     uuid.New().String(),
		ProjectTitle:           ExtractTitle(req.Description),
		ProjectDescription:     req.Description,
		Industry:               industry,
		Complexity:             complexity,
		EstimatedTotalDuration: totalDuration,
		EstimatedBudget:        EstimateBudget(complexity, totalDuration),
		Gates:                  gates,
		Checkpoints:            checkpoints,
		Resources:              resources,
		Risks:                  composeRisks(template, complexity),
		Assumptions:            composeAssumptions(template),
		CreatedAt:              now,
		UpdatedAt:              now,
		CreatedBy:              createdBy,
	}, nil
}

// buildGates instantiates gates in template order. Dependencies are kept
// as predecessor indexes internally; the name-keyed list consumers expect
// is derived from the index so a rename cannot break the edge.
func buildGates(templates []catalog.GateTemplate) []types.RoadmapGate {
	gates := make([]types.RoadmapGate, len(templates))
	for i, gt := range templates {
		gate := types.RoadmapGate{
			ID:                uuid.New().String(),
			Name:              gt.Name,
			Description:       gt.Description,
			Order:             i + 1,
			EstimatedDuration: gt.EstimatedDuration,
			DependsOn:         i - 1,
			Dependencies:      []string{},
			RequiredResources: []string{},
			Deliverables:      append([]string(nil), gt.Deliverables...),
			SuccessCriteria:   append([]string(nil), gt.SuccessCriteria...),
			RiskLevel:         gt.RiskLevel,
			Status:            types.GateNotStarted,
		}
		if gate.DependsOn >= 0 {
			gate.Dependencies = []string{templates[gate.DependsOn].Name}
		}
		gates[i] = gate
	}
	return gates
}

// buildCheckpoints flattens one checkpoint per gate deliverable. Each
// checkpoint's duration is the gate duration split evenly across
// deliverables, rounded up.
func buildCheckpoints(gates []types.RoadmapGate) []types.RoadmapCheckpoint {
	var checkpoints []types.RoadmapCheckpoint
	for _, gate := range gates {
		n := len(gate.Deliverables)
		if n == 0 {
			continue
		}
		perDeliverable := (gate.EstimatedDuration + n - 1) / n
		for i, deliverable := range gate.Deliverables {
			checkpoints = append(checkpoints, types.RoadmapCheckpoint{
				ID:                uuid.New().String(),
				GateID:            gate.ID,
				Name:              gate.Name + " - " + deliverable,
				Description:       "Checkpoint for " + deliverable,
				Order:             i + 1,
				EstimatedDuration: perDeliverable,
				RequiredEvidence:  []string{deliverable},
				Approvers:         []string{},
				Status:            types.CheckpointNotStarted,
			})
		}
	}
	return checkpoints
}

// buildResources includes the whole template roster; there is no
// selection or filtering step.
func buildResources(templates []catalog.ResourceTemplate) []types.RoadmapResource {
	resources := make([]types.RoadmapResource, len(templates))
	for i, rt := range templates {
		resources[i] = types.RoadmapResource{
			ID:                      uuid.New().String(),
			Name:                    rt.Name,
			Role:                    rt.Role,
			Department:              rt.Department,
			Expertise:               append([]string(nil), rt.Expertise...),
			Availability:            rt.Availability,
			ContactInfo:             types.ContactInfo{Email: rt.Email},
			EstimatedTimeCommitment: rt.TimeCommitment,
		}
	}
	return resources
}

// ExtractTitle takes the first five whitespace-delimited words of the
// description, appending an ellipsis when truncated.
func ExtractTitle(description string) string {
	words := strings.Fields(description)
	if len(words) <= 5 {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:5], " ") + "..."
}

// Classify derives the complexity tier; the first matching rule wins.
func Classify(description string, totalDuration int) types.Complexity {
	wordCount := len(strings.Fields(description))
	hasComplexKeywords := complexKeywords.MatchString(description)

	switch {
	case totalDuration > 365 || hasComplexKeywords:
		return types.ComplexityEnterprise
	case totalDuration > 180 || wordCount > 50:
		return types.ComplexityComplex
	case totalDuration > 90 || wordCount > 30:
		return types.ComplexityModerate
	default:
		return types.ComplexitySimple
	}
}

// EstimateBudget multiplies the complexity tier's daily-rate band by the
// total duration. Currency is fixed to USD.
func EstimateBudget(complexity types.Complexity, totalDuration int) types.Budget {
	rate := dailyRates[complexity]
	return types.Budget{
		Min:      rate.Min * totalDuration,
		Max:      rate.Max * totalDuration,
		Currency: "USD",
	}
}

func composeRisks(template catalog.IndustryTemplate, complexity types.Complexity) []string {
	risks := append([]string(nil), commonRisks...)
	risks = append(risks, template.Risks...)
	risks = append(risks, complexityRisks[complexity]...)
	return risks
}

func composeAssumptions(template catalog.IndustryTemplate) []string {
	assumptions := append([]string(nil), commonAssumptions...)
	return append(assumptions, template.Assumptions...)
}
