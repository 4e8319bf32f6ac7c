package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnguard/churnguard/pkg/types"
)

// --- Decision threshold ---

func TestDecide_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		p         float64
		threshold float64
		want      types.Decision
	}{
		{"at default threshold", 0.20, DefaultDecisionThreshold, types.DecisionYes},
		{"just below default threshold", 0.199999, DefaultDecisionThreshold, types.DecisionNo},
		{"zero", 0, DefaultDecisionThreshold, types.DecisionNo},
		{"one", 1, DefaultDecisionThreshold, types.DecisionYes},
		{"override 0.5, p 0.49", 0.49, 0.5, types.DecisionNo},
		{"override 0, p 0", 0, 0, types.DecisionYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.p, tt.threshold))
		})
	}
}

// --- Tier table ---

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		p          float64
		wantTier   types.RiskTier
		wantAction string
	}{
		{1.0, types.RiskHigh, ActionHigh},
		{0.5, types.RiskHigh, ActionHigh},
		{0.49999, types.RiskMedium, ActionMedium},
		{0.3, types.RiskMedium, ActionMedium},
		{0.29999, types.RiskLow, ActionLow},
		{0.0, types.RiskLow, ActionLow},
	}
	for _, tt := range tests {
		got := TierFor(tt.p)
		assert.Equal(t, tt.wantTier, got.Tier, "p=%v", tt.p)
		assert.Equal(t, tt.wantAction, got.Action, "p=%v", tt.p)
	}
}

func TestTiers_OrderedHighestFirst(t *testing.T) {
	table := Tiers()
	require.Len(t, table, 3)
	for i := 1; i < len(table); i++ {
		assert.Greater(t, table[i-1].LowerBound, table[i].LowerBound)
	}
	assert.Equal(t, 0.0, table[len(table)-1].LowerBound)

	// The returned slice is a copy.
	table[0].LowerBound = 0.9
	assert.Equal(t, 0.5, Tiers()[0].LowerBound)
}

// --- Classify ---

func TestClassify_DecisionAndTierDisagree(t *testing.T) {
	got, err := Classify(0.25, DefaultDecisionThreshold)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionYes, got.Decision)
	assert.Equal(t, types.RiskLow, got.RiskTier)
	assert.Equal(t, ActionLow, got.RecommendedAction)
	assert.Equal(t, DefaultDecisionThreshold, got.Threshold)
}

func TestClassify_High(t *testing.T) {
	got, err := Classify(0.62, DefaultDecisionThreshold)
	require.NoError(t, err)
	assert.Equal(t, types.ClassificationResult{
		Probability:       0.62,
		Decision:          types.DecisionYes,
		RiskTier:          types.RiskHigh,
		RecommendedAction: ActionHigh,
		Threshold:         DefaultDecisionThreshold,
	}, got)
}

func TestClassify_OutOfRangeProbability(t *testing.T) {
	for _, p := range []float64{-0.01, 1.0001, math.NaN(), math.Inf(1)} {
		_, err := Classify(p, DefaultDecisionThreshold)
		var ierr *types.IntegrationError
		require.ErrorAs(t, err, &ierr, "p=%v", p)
		assert.Equal(t, types.StageClassify, ierr.Stage)
	}
}

func TestClassify_InvalidThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := Classify(0.5, th)
		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr, "threshold=%v", th)
		assert.Equal(t, "threshold", verr.Field)
	}
}
