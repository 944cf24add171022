package roadmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oversightlabs/approval-service/catalog"
	"github.com/oversightlabs/approval-service/types"
)

func TestGenerate_TechnologyTemplate(t *testing.T) {
	plan, err := Generate(context.Background(), types.GenerateRoadmapRequest{
		Description: "Build a mobile banking product for retail customers",
		Industry:    "technology",
	})
	assert.NoError(t, err)

	template := catalog.Template("technology")
	assert.Len(t, plan.Gates, len(template.Gates))
	assert.Len(t, plan.Resources, len(template.Resources))
	assert.Equal(t, "technology", plan.Industry)
	assert.Equal(t, "USD", plan.EstimatedBudget.Currency)

	// Total duration equals the sum of per-gate durations.
	sum := 0
	for _, g := range plan.Gates {
		sum += g.EstimatedDuration
	}
	assert.Equal(t, sum, plan.EstimatedTotalDuration)
}

func TestGenerate_GateOrderingAndDependencies(t *testing.T) {
	plan, err := Generate(context.Background(), types.GenerateRoadmapRequest{
		Description: "Launch a new product line",
	})
	assert.NoError(t, err)

	for i, gate := range plan.Gates {
		assert.Equal(t, i+1, gate.Order)
		assert.Equal(t, types.GateNotStarted, gate.Status)
		if i == 0 {
			assert.Empty(t, gate.Dependencies)
			assert.Equal(t, -1, gate.DependsOn)
		} else {
			assert.Equal(t, i-1, gate.DependsOn)
			if assert.Len(t, gate.Dependencies, 1) {
				assert.Equal(t, plan.Gates[i-1].Name, gate.Dependencies[0])
			}
		}
	}
}

func TestGenerate_CheckpointsPerDeliverable(t *testing.T) {
	plan, err := Generate(context.Background(), types.GenerateRoadmapRequest{
		Description: "Launch a new product line",
		Industry:    "pharmaceutical",
	})
	assert.NoError(t, err)

	byGate := make(map[string][]types.RoadmapCheckpoint)
	for _, cp := range plan.Checkpoints {
		byGate[cp.GateID] = append(byGate[cp.GateID], cp)
	}

	total := 0
	for _, gate := range plan.Gates {
		cps := byGate[gate.ID]
		assert.Len(t, cps, len(gate.Deliverables), "gate %s", gate.Name)
		total += len(cps)

		n := len(gate.Deliverables)
		wantDuration := (gate.EstimatedDuration + n - 1) / n
		for i, cp := range cps {
			assert.Equal(t, i+1, cp.Order)
			assert.Equal(t, wantDuration, cp.EstimatedDuration)
			assert.Equal(t, []string{gate.Deliverables[i]}, cp.RequiredEvidence)
			assert.Equal(t, types.CheckpointNotStarted, cp.Status)
		}
	}
	assert.Equal(t, total, len(plan.Checkpoints))
}

func TestGenerate_UnknownIndustryFallsBack(t *testing.T) {
	plan, err := Generate(context.Background(), types.GenerateRoadmapRequest{
		Description: "Catalog coastal species",
		Industry:    "marine_biology",
	})
	assert.NoError(t, err)

	tech := catalog.Template("technology")
	assert.Len(t, plan.Gates, len(tech.Gates))
	assert.Len(t, plan.Resources, len(tech.Resources))
	for i, gate := range plan.Gates {
		assert.Equal(t, tech.Gates[i].Name, gate.Name)
	}
	// The requested key is echoed back even when the template fell through.
	assert.Equal(t, "marine_biology", plan.Industry)
}

func TestGenerate_ContentIsReproducible(t *testing.T) {
	req := types.GenerateRoadmapRequest{
		Description: "Deploy a machine learning fraud detection platform across three regions",
		Industry:    "technology",
	}

	a, err := Generate(context.Background(), req)
	assert.NoError(t, err)
	b, err := Generate(context.Background(), req)
	assert.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "identities must be fresh per call")
	assert.Equal(t, a.Complexity, b.Complexity)
	assert.Equal(t, a.EstimatedTotalDuration, b.EstimatedTotalDuration)
	assert.Equal(t, a.EstimatedBudget, b.EstimatedBudget)
	assert.Equal(t, a.Risks, b.Risks)
	assert.Equal(t, a.Assumptions, b.Assumptions)

	assert.Equal(t, len(a.Gates), len(b.Gates))
	for i := range a.Gates {
		assert.Equal(t, a.Gates[i].Name, b.Gates[i].Name)
		assert.Equal(t, a.Gates[i].EstimatedDuration, b.Gates[i].EstimatedDuration)
		assert.Equal(t, a.Gates[i].Deliverables, b.Gates[i].Deliverables)
		assert.Equal(t, a.Gates[i].SuccessCriteria, b.Gates[i].SuccessCriteria)
	}
	for i := range a.Resources {
		assert.Equal(t, a.Resources[i].Name, b.Resources[i].Name)
		assert.Equal(t, a.Resources[i].Expertise, b.Resources[i].Expertise)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, types.GenerateRoadmapRequest{Description: "anything"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		duration    int
		want        types.Complexity
	}{
		{"short and plain", "Build a simple todo list", 30, types.ComplexitySimple},
		{"duration over 90", "Build a simple todo list", 120, types.ComplexityModerate},
		{"duration over 180", "Build a simple todo list", 200, types.ComplexityComplex},
		{"duration over 365", "Build a simple todo list", 400, types.ComplexityEnterprise},
		{"clinical keyword wins over short duration", "Run a clinical trial intake portal", 30, types.ComplexityEnterprise},
		{"keyword match is case-insensitive", "FDA submission tracker", 30, types.ComplexityEnterprise},
		{"machine learning keyword", "A machine learning recommender", 30, types.ComplexityEnterprise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description, tt.duration))
		})
	}
}

func TestClassify_WordCountThresholds(t *testing.T) {
	words := func(n int) string {
		s := ""
		for i := 0; i < n; i++ {
			s += "word "
		}
		return s
	}

	assert.Equal(t, types.ComplexityModerate, Classify(words(31), 10))
	assert.Equal(t, types.ComplexityComplex, Classify(words(51), 10))
	assert.Equal(t, types.ComplexitySimple, Classify(words(10), 10))
}

func TestEstimateBudget(t *testing.T) {
	b := EstimateBudget(types.ComplexitySimple, 30)
	assert.Equal(t, 15000, b.Min)
	assert.Equal(t, 30000, b.Max)
	assert.Equal(t, "USD", b.Currency)

	b = EstimateBudget(types.ComplexityEnterprise, 100)
	assert.Equal(t, 500000, b.Min)
	assert.Equal(t, 1500000, b.Max)
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Build a todo app", ExtractTitle("Build a todo app"))
	assert.Equal(t, "Build a multi region fraud...", ExtractTitle("Build a multi region fraud detection platform"))
	assert.Equal(t, "one two three four five", ExtractTitle("one two three four five"))
	assert.Equal(t, "", ExtractTitle("   "))
}

func TestGenerate_RiskComposition(t *testing.T) {
	plan, err := Generate(context.Background(), types.GenerateRoadmapRequest{
		Description: "Develop a new drug delivery mechanism",
		Industry:    "pharmaceutical",
	})
	assert.NoError(t, err)

	// common (4) + pharmaceutical (4) + enterprise (3)
	assert.Equal(t, types.ComplexityEnterprise, plan.Complexity)
	assert.Len(t, plan.Risks, 11)
	assert.Contains(t, plan.Risks, "Regulatory approval delays")
	assert.Contains(t, plan.Risks, "Stakeholder alignment and communication")

	// common (3) + pharmaceutical (3); no complexity-specific assumptions.
	assert.Len(t, plan.Assumptions, 6)
	assert.Contains(t, plan.Assumptions, "Regulatory environment remains stable")
}
