package types

import "fmt"

// ValidationError reports a raw input field outside its declared domain.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Integration stages reported by IntegrationError.
const (
	StageTransform = "transform"
	StagePredict   = "predict"
	StageClassify  = "classify"
)

// IntegrationError reports a failure of the supplied model artifact: an error
// or panic during transform/predict, or a malformed probability.
type IntegrationError struct {
	Stage string
	Err   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Stage, e.Err)
}

func (e *IntegrationError) Unwrap() error { return e.Err }
