package pipeline

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/churnguard/churnguard/internal/features"
	"github.com/churnguard/churnguard/internal/risk"
	"github.com/churnguard/churnguard/internal/scoring"
	"github.com/churnguard/churnguard/pkg/types"
)

// Outcome is the result of one pipeline run together with the enriched
// record it was computed from.
type Outcome struct {
	Result   types.ClassificationResult
	Features *types.EnrichedRecord
}

// AdapterSource yields the artifact to score with. Implementations return
// scoring.ErrNoArtifact when nothing is loaded.
type AdapterSource interface {
	Adapter() (*scoring.Adapter, error)
}

// Run scores one record with the given adapter and decision threshold.
func Run(rec types.CustomerRecord, a *scoring.Adapter, threshold float64) (*Outcome, error) {
	if err := risk.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if a == nil {
		return nil, scoring.ErrNoArtifact
	}

	enriched, err := features.Derive(rec)
	if err != nil {
		return nil, err
	}

	p, err := a.Score(enriched)
	if err != nil {
		return nil, err
	}

	res, err := risk.Classify(p, threshold)
	if err != nil {
		return nil, err
	}
	return &Outcome{Result: res, Features: enriched}, nil
}

// Pipeline is a reusable Run bound to an artifact source and a configurable
// default threshold. It is safe for concurrent use.
type Pipeline struct {
	src       AdapterSource
	threshold atomic.Uint64 // math.Float64bits of the default threshold
}

// New returns a Pipeline reading artifacts from src with the given default
// decision threshold.
func New(src AdapterSource, threshold float64) (*Pipeline, error) {
	p := &Pipeline{src: src}
	if err := p.SetThreshold(threshold); err != nil {
		return nil, err
	}
	return p, nil
}

// Threshold returns the current default decision threshold.
func (p *Pipeline) Threshold() float64 {
	return math.Float64frombits(p.threshold.Load())
}

// SetThreshold replaces the default decision threshold. Calls already in
// flight keep the value they started with.
func (p *Pipeline) SetThreshold(t float64) error {
	if err := risk.ValidateThreshold(t); err != nil {
		return err
	}
	p.threshold.Store(math.Float64bits(t))
	return nil
}

// Score runs the pipeline on rec. A non-nil override replaces the default
// threshold for this call only.
func (p *Pipeline) Score(rec types.CustomerRecord, override *float64) (*Outcome, error) {
	threshold := p.Threshold()
	if override != nil {
		threshold = *override
	}
	if err := risk.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	a, err := p.src.Adapter()
	if err != nil {
		return nil, err
	}

	out, err := Run(rec, a, threshold)
	if err != nil {
		return nil, err
	}

	slog.Debug("pipeline: scored record",
		"probability", out.Result.Probability,
		"decision", out.Result.Decision,
		"tier", out.Result.RiskTier,
		"threshold", threshold,
	)
	return out, nil
}
