package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/churnguard/churnguard/pkg/types"
)

// ErrNoArtifact is returned by artifact sources that have nothing loaded yet.
var ErrNoArtifact = errors.New("scoring: no model artifact loaded")

// Preprocessor converts an enriched record into the numeric feature vector
// the classifier was fitted on.
type Preprocessor interface {
	Transform(rec *types.EnrichedRecord) ([]float64, error)
}

// Classifier returns the probability of the positive (churn) class for a
// transformed feature vector.
type Classifier interface {
	PredictProbability(x []float64) (float64, error)
}

// Adapter binds one Preprocessor and one Classifier. It holds no mutable
// state and may be shared across goroutines as long as the wrapped artifact
// is itself read-only during inference.
type Adapter struct {
	pre Preprocessor
	clf Classifier
}

// NewAdapter returns an Adapter over the given artifact pair.
func NewAdapter(pre Preprocessor, clf Classifier) (*Adapter, error) {
	if pre == nil || clf == nil {
		return nil, errors.New("scoring: preprocessor and classifier are required")
	}
	return &Adapter{pre: pre, clf: clf}, nil
}

// Score returns the churn probability for rec.
func (a *Adapter) Score(rec *types.EnrichedRecord) (float64, error) {
	x, err := a.transform(rec)
	if err != nil {
		return 0, &types.IntegrationError{Stage: types.StageTransform, Err: err}
	}
	if len(x) == 0 {
		return 0, &types.IntegrationError{Stage: types.StageTransform, Err: errors.New("empty feature vector")}
	}

	p, err := a.predict(x)
	if err != nil {
		return 0, &types.IntegrationError{Stage: types.StagePredict, Err: err}
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, &types.IntegrationError{
			Stage: types.StagePredict,
			Err:   fmt.Errorf("probability %v outside [0, 1]", p),
		}
	}
	return p, nil
}

func (a *Adapter) transform(rec *types.EnrichedRecord) (x []float64, err error) {
	defer recoverInto(&err)
	return a.pre.Transform(rec)
}

func (a *Adapter) predict(x []float64) (p float64, err error) {
	defer recoverInto(&err)
	return a.clf.PredictProbability(x)
}

// recoverInto turns a panic raised inside the artifact into an error.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
