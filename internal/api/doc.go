// Package api implements the churnguard HTTP API.
//
// New(deps) returns an http.Handler that serves:
//
//	POST /api/v1/score     score one CustomerRecord; ?threshold= overrides the cutoff
//	GET  /api/v1/health    liveness plus whether a model is loaded (503 if not)
//	GET  /api/v1/model     active model metadata, decision threshold, tier table
//	GET  /metrics          Prometheus exposition (content-negotiated)
//
// Error status codes for /api/v1/score:
//   - 400 malformed JSON, unknown field, or data after the JSON object
//   - 413 body larger than 64 KiB
//   - 422 a field or the threshold is out of its domain
//   - 502 the model artifact failed (transform, predict or bad probability)
//   - 503 no model artifact is loaded
//
// Every response carries X-Request-ID: the incoming value when present,
// otherwise a new UUID. All bodies except /metrics are JSON.
package api
