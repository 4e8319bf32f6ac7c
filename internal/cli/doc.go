// Package cli wires the churnguard commands:
//
//	churnguard serve --config config.yaml
//	churnguard score --model models/telco-logreg.yaml --input record.yaml [--threshold 0.2] [--format json|yaml]
//
// serve runs the HTTP API with config and model hot reload under one
// errgroup and shuts down gracefully on SIGINT/SIGTERM. score runs the
// pipeline once over a record file layered on the form defaults.
package cli
