package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnums_Valid(t *testing.T) {
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("male").Valid(), "values are case-sensitive")

	assert.True(t, No.Valid())
	assert.False(t, YesNo("").Valid())

	assert.True(t, MultipleLinesNoPhone.Valid())
	assert.False(t, MultipleLines("No internet service").Valid())

	assert.True(t, InternetFiber.Valid())
	assert.False(t, InternetService("Fiber").Valid())

	assert.True(t, AddonNoInternet.Valid())
	assert.False(t, InternetAddon("No phone service").Valid())

	assert.True(t, ContractTwoYear.Valid())
	assert.False(t, Contract("Two years").Valid())

	assert.True(t, PaymentCreditCard.Valid())
	assert.False(t, PaymentMethod("Credit card").Valid())
}

func TestDefaultCustomerRecord_AllFieldsValid(t *testing.T) {
	r := DefaultCustomerRecord()
	assert.Equal(t, 12, r.Tenure)
	assert.True(t, r.Gender.Valid())
	assert.True(t, r.SeniorCitizen.Valid())
	assert.True(t, r.MultipleLines.Valid())
	assert.True(t, r.InternetService.Valid())
	assert.True(t, r.StreamingMovies.Valid())
	assert.True(t, r.Contract.Valid())
	assert.True(t, r.PaymentMethod.Valid())
}

func TestCustomerRecord_DecodesCanonicalKeys(t *testing.T) {
	doc := `
tenure: 5
monthly_charges: 80.5
internet_service: Fiber optic
payment_method: Bank transfer (automatic)
senior_citizen: "Yes"
`
	r := DefaultCustomerRecord()
	require.NoError(t, yaml.Unmarshal([]byte(doc), &r))
	assert.Equal(t, 5, r.Tenure)
	assert.Equal(t, 80.5, r.MonthlyCharges)
	assert.Equal(t, InternetFiber, r.InternetService)
	assert.Equal(t, PaymentBankTransfer, r.PaymentMethod)
	assert.Equal(t, Yes, r.SeniorCitizen)
	assert.Equal(t, 600.0, r.TotalCharges, "unset keys keep the starting value")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"monthly_charges":80.5`)
}

func TestEnrichedRecord_Lookups(t *testing.T) {
	r := &EnrichedRecord{
		CustomerRecord:     DefaultCustomerRecord(),
		TenureBucket:       TenureNew,
		TotalServices:      3,
		MonthlyTenureRatio: 4.5,
		IsFiber:            1,
	}
	r.SeniorCitizen = Yes

	v, ok := r.Numeric(FeatureSeniorCitizen)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = r.Numeric(FeatureTotalServices)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = r.Numeric(FeatureMonthlyTenureRatio)
	require.True(t, ok)
	assert.Equal(t, 4.5, v)

	s, ok := r.Categorical(FeatureTenureBucket)
	require.True(t, ok)
	assert.Equal(t, "New", s)

	s, ok = r.Categorical(FeaturePaymentMethod)
	require.True(t, ok)
	assert.Equal(t, "Electronic check", s)

	_, ok = r.Numeric(FeatureContract)
	assert.False(t, ok)
	_, ok = r.Categorical(FeatureTenure)
	assert.False(t, ok)
}

func TestFeatureKinds(t *testing.T) {
	numeric := []string{
		FeatureTenure, FeatureMonthlyCharges, FeatureTotalCharges, FeatureSeniorCitizen,
		FeatureTotalServices, FeatureMonthlyTenureRatio, FeatureIsFiber,
		FeatureHasSecuritySupport, FeatureIsHighRisk,
	}
	for _, n := range numeric {
		assert.True(t, IsNumericFeature(n), n)
		assert.False(t, IsCategoricalFeature(n), n)
	}

	categorical := []string{
		FeatureGender, FeaturePartner, FeatureDependents, FeaturePhoneService,
		FeatureMultipleLines, FeatureInternetService, FeatureOnlineSecurity,
		FeatureOnlineBackup, FeatureDeviceProtection, FeatureTechSupport,
		FeatureStreamingTV, FeatureStreamingMovies, FeatureContract,
		FeaturePaperlessBilling, FeaturePaymentMethod, FeatureTenureBucket,
	}
	for _, n := range categorical {
		assert.True(t, IsCategoricalFeature(n), n)
		assert.False(t, IsNumericFeature(n), n)
	}

	assert.False(t, IsNumericFeature("customer_id"))
	assert.False(t, IsCategoricalFeature("customer_id"))
}

func TestProbabilityPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.62, "62.0%"},
		{0, "0.0%"},
		{1, "100.0%"},
		{0.1234, "12.3%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassificationResult{Probability: tt.p}.ProbabilityPercent())
	}
}

func TestErrors(t *testing.T) {
	v := &ValidationError{Field: "tenure", Value: 80, Reason: "must be between 0 and 72"}
	assert.Equal(t, "invalid tenure 80: must be between 0 and 72", v.Error())

	cause := errors.New("boom")
	ie := &IntegrationError{Stage: StagePredict, Err: cause}
	assert.Equal(t, "model predict: boom", ie.Error())
	assert.ErrorIs(t, ie, cause)

	var target *IntegrationError
	assert.True(t, errors.As(error(ie), &target))
	assert.Equal(t, StagePredict, target.Stage)
}
