package api

import (
	"github.com/churnguard/churnguard/internal/model"
	"github.com/churnguard/churnguard/pkg/types"
)

// ScoreResponse is the payload for POST /api/v1/score.
type ScoreResponse struct {
	Probability       float64         `json:"probability"`
	ProbabilityPct    string          `json:"probability_pct"` // e.g. "62.0%"
	Decision          types.Decision  `json:"decision"`
	RiskTier          types.RiskTier  `json:"risk_tier"`
	RecommendedAction string          `json:"recommended_action"`
	Threshold         float64         `json:"threshold"`
	Features          DerivedFeatures `json:"features"`
	Model             *ModelRef       `json:"model,omitempty"`
}

// DerivedFeatures are the engineered inputs the score was computed from.
type DerivedFeatures struct {
	TenureBucket       types.TenureBucket `json:"tenure_bucket"`
	TotalServices      int                `json:"total_services"`
	MonthlyTenureRatio float64            `json:"monthly_tenure_ratio"`
	IsFiber            int                `json:"is_fiber"`
	HasSecuritySupport int                `json:"has_security_support"`
	IsHighRisk         int                `json:"is_high_risk"`
}

// ModelRef names the artifact that produced a score.
type ModelRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"` // ok | unavailable
	ModelLoaded  bool   `json:"model_loaded"`
	ModelName    string `json:"model_name,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
}

// ModelResponse is the payload for GET /api/v1/model.
type ModelResponse struct {
	Loaded            bool           `json:"loaded"`
	Model             *model.Info    `json:"model,omitempty"`
	DecisionThreshold float64        `json:"decision_threshold"`
	Tiers             []TierResponse `json:"tiers"`
}

// TierResponse is one row of the risk tier legend.
type TierResponse struct {
	Tier       types.RiskTier `json:"tier"`
	LowerBound float64        `json:"lower_bound"`
	UpperBound float64        `json:"upper_bound"` // exclusive, except 1.0 for the top tier
	Action     string         `json:"recommended_action"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Stage string `json:"stage,omitempty"`
}
