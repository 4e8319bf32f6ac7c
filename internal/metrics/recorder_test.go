package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnguard/churnguard/pkg/types"
)

func render(t *testing.T, r *Recorder, g Gauges) map[string]*dto.MetricFamily {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, expfmt.NewFormat(expfmt.TypeTextPlain), g))

	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(&buf)
	require.NoError(t, err)
	return mfs
}

func valueWith(mf *dto.MetricFamily, kv ...string) (float64, bool) {
	for _, m := range mf.GetMetric() {
		match := true
		for i := 0; i+1 < len(kv); i += 2 {
			found := false
			for _, lp := range m.GetLabel() {
				if lp.GetName() == kv[i] && lp.GetValue() == kv[i+1] {
					found = true
				}
			}
			match = match && found
		}
		if !match {
			continue
		}
		if m.Counter != nil {
			return m.Counter.GetValue(), true
		}
		return m.Gauge.GetValue(), true
	}
	return 0, false
}

func TestRecorder_CountsResults(t *testing.T) {
	r := New()
	r.ObserveResult(types.ClassificationResult{RiskTier: types.RiskHigh, Decision: types.DecisionYes})
	r.ObserveResult(types.ClassificationResult{RiskTier: types.RiskHigh, Decision: types.DecisionYes})
	r.ObserveResult(types.ClassificationResult{RiskTier: types.RiskLow, Decision: types.DecisionNo})

	mfs := render(t, r, Gauges{Threshold: 0.2})
	scored := mfs["churnguard_scored_total"]
	require.NotNil(t, scored)
	assert.Equal(t, dto.MetricType_COUNTER, scored.GetType())

	v, ok := valueWith(scored, "risk_tier", "HIGH", "decision", "Yes")
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = valueWith(scored, "risk_tier", "LOW", "decision", "No")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestRecorder_ObserveError(t *testing.T) {
	r := New()
	r.ObserveError(&types.ValidationError{Field: "tenure", Value: 99, Reason: "out of range"})
	r.ObserveError(fmt.Errorf("wrapped: %w", &types.IntegrationError{Stage: types.StagePredict, Err: errors.New("x")}))
	r.ObserveError(errors.New("unrelated"))

	mfs := render(t, r, Gauges{})

	v, ok := valueWith(mfs["churnguard_validation_failures_total"], "field", "tenure")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = valueWith(mfs["churnguard_integration_failures_total"], "stage", "predict")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestRecorder_ModelReloads(t *testing.T) {
	r := New()
	r.ObserveModelReload(nil)
	r.ObserveModelReload(nil)
	r.ObserveModelReload(errors.New("bad yaml"))

	mfs := render(t, r, Gauges{})
	reloads := mfs["churnguard_model_reloads_total"]

	v, _ := valueWith(reloads, "outcome", OutcomeSuccess)
	assert.Equal(t, 2.0, v)
	v, _ = valueWith(reloads, "outcome", OutcomeFailure)
	assert.Equal(t, 1.0, v)
}

func TestRecorder_Gauges(t *testing.T) {
	r := New()

	mfs := render(t, r, Gauges{Threshold: 0.35})
	v, ok := valueWith(mfs["churnguard_decision_threshold"])
	require.True(t, ok)
	assert.Equal(t, 0.35, v)
	assert.NotContains(t, mfs, "churnguard_model_info", "no info series without a model")
	assert.NotContains(t, mfs, "churnguard_scored_total", "empty counters are omitted")

	mfs = render(t, r, Gauges{Threshold: 0.2, ModelLoaded: true, ModelName: "telco-logreg", ModelVersion: "v1"})
	v, ok = valueWith(mfs["churnguard_model_info"], "name", "telco-logreg", "version", "v1")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestRecorder_FamiliesSortedByName(t *testing.T) {
	r := New()
	r.ObserveResult(types.ClassificationResult{RiskTier: types.RiskMedium, Decision: types.DecisionYes})
	r.ObserveValidationFailure("contract")
	r.ObserveModelReload(nil)

	fams := r.Families(Gauges{ModelLoaded: true, ModelName: "m"})
	var names []string
	for _, mf := range fams {
		names = append(names, mf.GetName())
	}
	assert.IsIncreasing(t, names)
}

func TestRecorder_Concurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ObserveResult(types.ClassificationResult{RiskTier: types.RiskLow, Decision: types.DecisionNo})
		}()
	}
	wg.Wait()

	v, _ := valueWith(render(t, r, Gauges{})["churnguard_scored_total"], "risk_tier", "LOW")
	assert.Equal(t, 50.0, v)
}
