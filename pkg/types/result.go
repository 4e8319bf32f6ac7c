package types

import "fmt"

// Decision is the binary churn call produced by the decision threshold.
type Decision string

const (
	DecisionYes Decision = "Yes"
	DecisionNo  Decision = "No"
)

// RiskTier is the three-level summary used to route retention actions.
type RiskTier string

const (
	RiskHigh   RiskTier = "HIGH"
	RiskMedium RiskTier = "MEDIUM"
	RiskLow    RiskTier = "LOW"
)

// ClassificationResult is the outcome of scoring one record.
// Decision and RiskTier come from independent cutoffs and can disagree.
type ClassificationResult struct {
	Probability       float64  `json:"probability" yaml:"probability"`
	Decision          Decision `json:"decision" yaml:"decision"`
	RiskTier          RiskTier `json:"risk_tier" yaml:"risk_tier"`
	RecommendedAction string   `json:"recommended_action" yaml:"recommended_action"`
	Threshold         float64  `json:"threshold" yaml:"threshold"`
}

// ProbabilityPercent formats the probability with one decimal, e.g. "62.0%".
func (r ClassificationResult) ProbabilityPercent() string {
	return fmt.Sprintf("%.1f%%", r.Probability*100)
}
