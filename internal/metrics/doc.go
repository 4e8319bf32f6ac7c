// Package metrics counts scoring outcomes and renders them in the
// Prometheus exposition format.
//
// Recorder is an in-process counter set; it has no dependency on a
// Prometheus registry. Write builds dto.MetricFamily values from the
// counters plus caller-supplied gauges and encodes them with expfmt.
//
// Families:
//   - churnguard_scored_total{risk_tier, decision}
//   - churnguard_validation_failures_total{field}
//   - churnguard_integration_failures_total{stage}
//   - churnguard_model_reloads_total{outcome}
//   - churnguard_decision_threshold
//   - churnguard_model_info{name, version}
package metrics
