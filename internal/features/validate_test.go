package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnguard/churnguard/pkg/types"
)

func TestValidate_DefaultRecordIsValid(t *testing.T) {
	rec := types.DefaultCustomerRecord()
	assert.NoError(t, Validate(&rec))
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.CustomerRecord)
		wantField string
	}{
		{"tenure at max", func(r *types.CustomerRecord) { r.Tenure = 72 }, ""},
		{"tenure negative", func(r *types.CustomerRecord) { r.Tenure = -1 }, types.FeatureTenure},
		{"tenure above max", func(r *types.CustomerRecord) { r.Tenure = 73 }, types.FeatureTenure},
		{"monthly at bounds", func(r *types.CustomerRecord) { r.MonthlyCharges = 200 }, ""},
		{"monthly negative", func(r *types.CustomerRecord) { r.MonthlyCharges = -0.01 }, types.FeatureMonthlyCharges},
		{"monthly above max", func(r *types.CustomerRecord) { r.MonthlyCharges = 200.01 }, types.FeatureMonthlyCharges},
		{"monthly infinite", func(r *types.CustomerRecord) { r.MonthlyCharges = math.Inf(1) }, types.FeatureMonthlyCharges},
		{"total at max", func(r *types.CustomerRecord) { r.TotalCharges = 10000 }, ""},
		{"total above max", func(r *types.CustomerRecord) { r.TotalCharges = 10000.5 }, types.FeatureTotalCharges},
		{"total NaN", func(r *types.CustomerRecord) { r.TotalCharges = math.NaN() }, types.FeatureTotalCharges},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.DefaultCustomerRecord()
			tt.mutate(&rec)
			err := Validate(&rec)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_Enumerations(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*types.CustomerRecord)
	}{
		{types.FeatureGender, func(r *types.CustomerRecord) { r.Gender = "male" }},
		{types.FeatureSeniorCitizen, func(r *types.CustomerRecord) { r.SeniorCitizen = "1" }},
		{types.FeaturePartner, func(r *types.CustomerRecord) { r.Partner = "" }},
		{types.FeatureDependents, func(r *types.CustomerRecord) { r.Dependents = "yes" }},
		{types.FeaturePhoneService, func(r *types.CustomerRecord) { r.PhoneService = "No phone service" }},
		{types.FeatureMultipleLines, func(r *types.CustomerRecord) { r.MultipleLines = "No internet service" }},
		{types.FeatureInternetService, func(r *types.CustomerRecord) { r.InternetService = "Cable" }},
		{types.FeatureOnlineSecurity, func(r *types.CustomerRecord) { r.OnlineSecurity = "No phone service" }},
		{types.FeatureOnlineBackup, func(r *types.CustomerRecord) { r.OnlineBackup = "Maybe" }},
		{types.FeatureDeviceProtection, func(r *types.CustomerRecord) { r.DeviceProtection = "" }},
		{types.FeatureTechSupport, func(r *types.CustomerRecord) { r.TechSupport = "YES" }},
		{types.FeatureStreamingTV, func(r *types.CustomerRecord) { r.StreamingTV = "N/A" }},
		{types.FeatureStreamingMovies, func(r *types.CustomerRecord) { r.StreamingMovies = "no" }},
		{types.FeatureContract, func(r *types.CustomerRecord) { r.Contract = "Monthly" }},
		{types.FeaturePaperlessBilling, func(r *types.CustomerRecord) { r.PaperlessBilling = "True" }},
		{types.FeaturePaymentMethod, func(r *types.CustomerRecord) { r.PaymentMethod = "Cash" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			rec := types.DefaultCustomerRecord()
			tt.mutate(&rec)
			err := Validate(&rec)
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestValidate_ReportsFirstFieldInSchemaOrder(t *testing.T) {
	rec := types.DefaultCustomerRecord()
	rec.PaymentMethod = "Cash"
	rec.Gender = "Other"
	rec.Tenure = 100

	var verr *types.ValidationError
	require.ErrorAs(t, Validate(&rec), &verr)
	assert.Equal(t, types.FeatureTenure, verr.Field)

	rec.Tenure = 10
	require.ErrorAs(t, Validate(&rec), &verr)
	assert.Equal(t, types.FeatureGender, verr.Field)
}
