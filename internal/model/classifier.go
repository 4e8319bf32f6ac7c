package model

import (
	"errors"
	"fmt"
	"math"
)

// LogisticClassifier is a fitted binary logistic regression.
type LogisticClassifier struct {
	intercept float64
	coef      []float64
}

// NewLogisticClassifier validates spec against the expected input width.
func NewLogisticClassifier(spec ClassifierSpec, width int) (*LogisticClassifier, error) {
	if len(spec.Coefficients) == 0 {
		return nil, errors.New("classifier: coefficients are required")
	}
	if len(spec.Coefficients) != width {
		return nil, fmt.Errorf("classifier: %d coefficients for %d transformed features", len(spec.Coefficients), width)
	}
	for i, c := range spec.Coefficients {
		if !finite(c) {
			return nil, fmt.Errorf("classifier: coefficients[%d] is not finite", i)
		}
	}
	if !finite(spec.Intercept) {
		return nil, errors.New("classifier: intercept is not finite")
	}

	coef := make([]float64, len(spec.Coefficients))
	copy(coef, spec.Coefficients)
	return &LogisticClassifier{intercept: spec.Intercept, coef: coef}, nil
}

// PredictProbability returns P(churn | x).
func (c *LogisticClassifier) PredictProbability(x []float64) (float64, error) {
	if len(x) != len(c.coef) {
		return 0, fmt.Errorf("got %d features, want %d", len(x), len(c.coef))
	}
	z := c.intercept
	for i, w := range c.coef {
		z += w * x[i]
	}
	return sigmoid(z), nil
}

// sigmoid is the logistic function, arranged to avoid overflow in exp.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
