package features

import (
	"math"

	"github.com/churnguard/churnguard/pkg/types"
)

// categoricalCheck pairs a field name with its membership test.
type categoricalCheck struct {
	field string
	value any
	valid bool
}

// Validate checks every field of rec against its domain and returns a
// *types.ValidationError for the first violation, or nil.
func Validate(rec *types.CustomerRecord) error {
	if rec.Tenure < types.MinTenure || rec.Tenure > types.MaxTenure {
		return outOfRange(types.FeatureTenure, rec.Tenure, types.MinTenure, types.MaxTenure)
	}
	if !inRange(rec.MonthlyCharges, types.MinMonthlyCharges, types.MaxMonthlyCharges) {
		return outOfRange(types.FeatureMonthlyCharges, rec.MonthlyCharges, types.MinMonthlyCharges, types.MaxMonthlyCharges)
	}
	if !inRange(rec.TotalCharges, types.MinTotalCharges, types.MaxTotalCharges) {
		return outOfRange(types.FeatureTotalCharges, rec.TotalCharges, types.MinTotalCharges, types.MaxTotalCharges)
	}

	checks := []categoricalCheck{
		{types.FeatureGender, rec.Gender, rec.Gender.Valid()},
		{types.FeatureSeniorCitizen, rec.SeniorCitizen, rec.SeniorCitizen.Valid()},
		{types.FeaturePartner, rec.Partner, rec.Partner.Valid()},
		{types.FeatureDependents, rec.Dependents, rec.Dependents.Valid()},
		{types.FeaturePhoneService, rec.PhoneService, rec.PhoneService.Valid()},
		{types.FeatureMultipleLines, rec.MultipleLines, rec.MultipleLines.Valid()},
		{types.FeatureInternetService, rec.InternetService, rec.InternetService.Valid()},
		{types.FeatureOnlineSecurity, rec.OnlineSecurity, rec.OnlineSecurity.Valid()},
		{types.FeatureOnlineBackup, rec.OnlineBackup, rec.OnlineBackup.Valid()},
		{types.FeatureDeviceProtection, rec.DeviceProtection, rec.DeviceProtection.Valid()},
		{types.FeatureTechSupport, rec.TechSupport, rec.TechSupport.Valid()},
		{types.FeatureStreamingTV, rec.StreamingTV, rec.StreamingTV.Valid()},
		{types.FeatureStreamingMovies, rec.StreamingMovies, rec.StreamingMovies.Valid()},
		{types.FeatureContract, rec.Contract, rec.Contract.Valid()},
		{types.FeaturePaperlessBilling, rec.PaperlessBilling, rec.PaperlessBilling.Valid()},
		{types.FeaturePaymentMethod, rec.PaymentMethod, rec.PaymentMethod.Valid()},
	}
	for _, c := range checks {
		if !c.valid {
			return &types.ValidationError{
				Field:  c.field,
				Value:  c.value,
				Reason: "not in the allowed set of values",
			}
		}
	}
	return nil
}

// inRange rejects NaN and infinities along with values outside [lo, hi].
func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}

func outOfRange[T int | float64](field string, v, lo, hi T) error {
	return &types.ValidationError{
		Field:  field,
		Value:  v,
		Reason: "must be between " + format(lo) + " and " + format(hi),
	}
}
