// Package types defines the customer and classification types shared by the
// scoring core, the HTTP API and the CLI.
//
// CustomerRecord is the raw, user-supplied record. EnrichedRecord adds the
// derived features and is produced only by internal/features. Every
// categorical attribute is a named string type with a closed set of values;
// Valid reports membership.
package types
