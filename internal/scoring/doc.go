// Package scoring is the seam between the churn pipeline and a pre-fitted
// model artifact.
//
// An artifact is any Preprocessor + Classifier pair. Adapter.Score runs the
// preprocessor's transform over an EnrichedRecord and feeds the resulting
// vector to the classifier, strictly in inference mode. Errors and panics
// from either side, empty vectors, and probabilities that are NaN or outside
// [0, 1] are surfaced as *types.IntegrationError; nothing is clamped or
// defaulted.
package scoring
