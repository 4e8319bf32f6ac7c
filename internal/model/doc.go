// Package model loads the churn model artifact from disk and keeps the
// active copy available to the scoring pipeline.
//
// The artifact file is YAML with three parts: identity (name, version), a
// preprocessor (standard-scaled numeric columns followed by one-hot encoded
// categorical columns, in file order) and a logistic regression classifier
// (intercept plus one coefficient per transformed column). Parse validates
// every feature name against the EnrichedRecord schema and checks that the
// coefficient count matches the transformed width, so a loaded artifact
// cannot fail on shape at request time.
//
// Registry holds the active Artifact behind an atomic pointer. Loading
// builds a fresh, immutable Artifact and swaps it in; concurrent scorers keep
// using whichever Artifact they already obtained. Watch observes the
// artifact's directory, waits for a burst of events to settle, and calls
// Refresh, which swaps only when the file's checksum changed and keeps the
// previous artifact if the new file is invalid.
package model
