// Package pipeline composes feature derivation, model scoring and risk
// classification into a single call.
//
// Run is the stateless entry point: record + artifact + threshold in,
// Outcome out. Pipeline wraps Run for long-lived callers (the HTTP API and
// the CLI): it reads the current artifact from an AdapterSource on every
// call and holds the configured decision threshold, which can be replaced
// at runtime without locking the scoring path.
//
// Stages run in order: validate → derive → score → classify. The first
// failing stage aborts the call and no partial Outcome is returned.
package pipeline
