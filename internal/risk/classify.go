package risk

import (
	"fmt"
	"math"

	"github.com/churnguard/churnguard/pkg/types"
)

// DefaultDecisionThreshold is the recall-tuned cutoff for a "Yes" decision.
const DefaultDecisionThreshold = 0.20

// Recommended actions per tier.
const (
	ActionHigh   = "Immediate retention offer recommended"
	ActionMedium = "Proactive engagement recommended"
	ActionLow    = "Standard service monitoring"
)

// Tier is one row of the tier table: probabilities at or above LowerBound
// (and below the previous row's bound) fall in this tier.
type Tier struct {
	LowerBound float64
	Tier       types.RiskTier
	Action     string
}

// tiers is evaluated top-down; the first row whose LowerBound is <= p wins.
// The last row must have LowerBound 0.
var tiers = []Tier{
	{LowerBound: 0.5, Tier: types.RiskHigh, Action: ActionHigh},
	{LowerBound: 0.3, Tier: types.RiskMedium, Action: ActionMedium},
	{LowerBound: 0.0, Tier: types.RiskLow, Action: ActionLow},
}

// Tiers returns a copy of the tier table, highest tier first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ValidateThreshold reports a *types.ValidationError when t is not a
// probability.
func ValidateThreshold(t float64) error {
	if !isProbability(t) {
		return &types.ValidationError{
			Field:  "threshold",
			Value:  t,
			Reason: "must be between 0 and 1",
		}
	}
	return nil
}

// Decide returns DecisionYes when p >= threshold. The boundary is inclusive.
func Decide(p, threshold float64) types.Decision {
	if p >= threshold {
		return types.DecisionYes
	}
	return types.DecisionNo
}

// TierFor returns the tier table row for p. p must be in [0, 1].
func TierFor(p float64) Tier {
	for _, t := range tiers {
		if p >= t.LowerBound {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Classify applies the decision threshold and the tier table to p.
// An out-of-range p is an integration fault of whatever produced it and is
// reported as *types.IntegrationError; an invalid threshold is a
// *types.ValidationError.
func Classify(p, threshold float64) (types.ClassificationResult, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return types.ClassificationResult{}, err
	}
	if !isProbability(p) {
		return types.ClassificationResult{}, &types.IntegrationError{
			Stage: types.StageClassify,
			Err:   fmt.Errorf("probability %v outside [0, 1]", p),
		}
	}

	t := TierFor(p)
	return types.ClassificationResult{
		Probability:       p,
		Decision:          Decide(p, threshold),
		RiskTier:          t.Tier,
		RecommendedAction: t.Action,
		Threshold:         threshold,
	}, nil
}

// isProbability rejects NaN as well as values outside [0, 1].
func isProbability(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
