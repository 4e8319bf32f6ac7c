package metrics

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/churnguard/churnguard/pkg/types"
)

const namespace = "churnguard"

// Reload outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Gauges are point-in-time values supplied by the caller at render time.
type Gauges struct {
	Threshold    float64
	ModelLoaded  bool
	ModelName    string
	ModelVersion string
}

// Recorder accumulates counters. The zero value is not usable; call New.
// All methods are safe for concurrent use.
type Recorder struct {
	mu           sync.Mutex
	scored       map[[2]string]float64 // {tier, decision}
	validation   map[string]float64
	integration  map[string]float64
	modelReloads map[string]float64
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		scored:       make(map[[2]string]float64),
		validation:   make(map[string]float64),
		integration:  make(map[string]float64),
		modelReloads: make(map[string]float64),
	}
}

// ObserveResult counts one successfully scored record.
func (r *Recorder) ObserveResult(res types.ClassificationResult) {
	r.mu.Lock()
	r.scored[[2]string{string(res.RiskTier), string(res.Decision)}]++
	r.mu.Unlock()
}

// ObserveError classifies err and counts it. Errors that are neither
// validation nor integration failures are ignored.
func (r *Recorder) ObserveError(err error) {
	var ve *types.ValidationError
	var ie *types.IntegrationError
	switch {
	case errors.As(err, &ve):
		r.ObserveValidationFailure(ve.Field)
	case errors.As(err, &ie):
		r.ObserveIntegrationFailure(ie.Stage)
	}
}

// ObserveValidationFailure counts a rejected input field.
func (r *Recorder) ObserveValidationFailure(field string) {
	r.mu.Lock()
	r.validation[field]++
	r.mu.Unlock()
}

// ObserveIntegrationFailure counts a model artifact failure at stage.
func (r *Recorder) ObserveIntegrationFailure(stage string) {
	r.mu.Lock()
	r.integration[stage]++
	r.mu.Unlock()
}

// ObserveModelReload counts a reload attempt; err is its result.
func (r *Recorder) ObserveModelReload(err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.mu.Lock()
	r.modelReloads[outcome]++
	r.mu.Unlock()
}

// Families snapshots the counters and g as metric families sorted by name.
func (r *Recorder) Families(g Gauges) []*dto.MetricFamily {
	r.mu.Lock()
	scored := counterFamily("scored_total", "Records scored, by risk tier and decision.")
	for k, v := range r.scored {
		scored.Metric = append(scored.Metric, counter(v, "risk_tier", k[0], "decision", k[1]))
	}
	validation := counterFamily("validation_failures_total", "Records rejected by input validation, by field.")
	for k, v := range r.validation {
		validation.Metric = append(validation.Metric, counter(v, "field", k))
	}
	integration := counterFamily("integration_failures_total", "Model artifact failures, by stage.")
	for k, v := range r.integration {
		integration.Metric = append(integration.Metric, counter(v, "stage", k))
	}
	reloads := counterFamily("model_reloads_total", "Model artifact reload attempts, by outcome.")
	for k, v := range r.modelReloads {
		reloads.Metric = append(reloads.Metric, counter(v, "outcome", k))
	}
	r.mu.Unlock()

	threshold := gaugeFamily("decision_threshold", "Active probability cutoff for the churn decision.")
	threshold.Metric = append(threshold.Metric, gauge(g.Threshold))

	info := gaugeFamily("model_info", "Active model artifact; value is 1 when a model is loaded.")
	if g.ModelLoaded {
		info.Metric = append(info.Metric, gauge(1, "name", g.ModelName, "version", g.ModelVersion))
	}

	var out []*dto.MetricFamily
	for _, mf := range []*dto.MetricFamily{scored, validation, integration, reloads, threshold, info} {
		if len(mf.Metric) == 0 {
			continue
		}
		sortMetrics(mf)
		out = append(out, mf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// Write encodes the current families to w in format.
func (r *Recorder) Write(w io.Writer, format expfmt.Format, g Gauges) error {
	enc := expfmt.NewEncoder(w, format)
	for _, mf := range r.Families(g) {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	if c, ok := enc.(expfmt.Closer); ok {
		return c.Close()
	}
	return nil
}

func counterFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: ptr(namespace + "_" + name),
		Help: ptr(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: ptr(namespace + "_" + name),
		Help: ptr(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func counter(v float64, kv ...string) *dto.Metric {
	return &dto.Metric{Label: labels(kv...), Counter: &dto.Counter{Value: ptr(v)}}
}

func gauge(v float64, kv ...string) *dto.Metric {
	return &dto.Metric{Label: labels(kv...), Gauge: &dto.Gauge{Value: ptr(v)}}
}

// labels builds label pairs from alternating name/value strings, sorted
// by name.
func labels(kv ...string) []*dto.LabelPair {
	out := make([]*dto.LabelPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, &dto.LabelPair{Name: ptr(kv[i]), Value: ptr(kv[i+1])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

func sortMetrics(mf *dto.MetricFamily) {
	sort.Slice(mf.Metric, func(i, j int) bool {
		return labelKey(mf.Metric[i]) < labelKey(mf.Metric[j])
	})
}

func labelKey(m *dto.Metric) string {
	var b strings.Builder
	for _, lp := range m.GetLabel() {
		b.WriteString(lp.GetName())
		b.WriteByte('=')
		b.WriteString(lp.GetValue())
		b.WriteByte(',')
	}
	return b.String()
}

func ptr[T any](v T) *T { return &v }
