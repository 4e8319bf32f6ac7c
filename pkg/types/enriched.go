package types

// TenureBucket is the coarse tenure band derived from CustomerRecord.Tenure.
type TenureBucket string

const (
	TenureNew         TenureBucket = "New"         // (0, 12]
	TenureEstablished TenureBucket = "Established" // (12, 36]
	TenureLoyal       TenureBucket = "Loyal"       // (36, 72]

	// TenureUnbucketed labels tenures outside every bin. The lowest bin is
	// open on the left, so a brand-new customer (tenure 0) lands here.
	TenureUnbucketed TenureBucket = "Unbucketed"
)

// Canonical feature names. The preprocessor addresses record fields by these
// names; they also match the JSON/YAML keys of CustomerRecord.
const (
	FeatureTenure             = "tenure"
	FeatureMonthlyCharges     = "monthly_charges"
	FeatureTotalCharges       = "total_charges"
	FeatureGender             = "gender"
	FeatureSeniorCitizen      = "senior_citizen"
	FeaturePartner            = "partner"
	FeatureDependents         = "dependents"
	FeaturePhoneService       = "phone_service"
	FeatureMultipleLines      = "multiple_lines"
	FeatureInternetService    = "internet_service"
	FeatureOnlineSecurity     = "online_security"
	FeatureOnlineBackup       = "online_backup"
	FeatureDeviceProtection   = "device_protection"
	FeatureTechSupport        = "tech_support"
	FeatureStreamingTV        = "streaming_tv"
	FeatureStreamingMovies    = "streaming_movies"
	FeatureContract           = "contract"
	FeaturePaperlessBilling   = "paperless_billing"
	FeaturePaymentMethod      = "payment_method"
	FeatureTenureBucket       = "tenure_bucket"
	FeatureTotalServices      = "total_services"
	FeatureMonthlyTenureRatio = "monthly_tenure_ratio"
	FeatureIsFiber            = "is_fiber"
	FeatureHasSecuritySupport = "has_security_support"
	FeatureIsHighRisk         = "is_high_risk"
)

// EnrichedRecord is a validated CustomerRecord together with its derived
// features. It is built by features.Derive and must not be modified after
// construction.
type EnrichedRecord struct {
	CustomerRecord

	TenureBucket       TenureBucket `json:"tenure_bucket" yaml:"tenure_bucket"`
	TotalServices      int          `json:"total_services" yaml:"total_services"`
	MonthlyTenureRatio float64      `json:"monthly_tenure_ratio" yaml:"monthly_tenure_ratio"`
	IsFiber            int          `json:"is_fiber" yaml:"is_fiber"`
	HasSecuritySupport int          `json:"has_security_support" yaml:"has_security_support"`
	IsHighRisk         int          `json:"is_high_risk" yaml:"is_high_risk"`
}

// Numeric returns the value of a numeric feature by canonical name.
// senior_citizen is exposed here as 1/0 rather than as a category.
func (r *EnrichedRecord) Numeric(name string) (float64, bool) {
	switch name {
	case FeatureTenure:
		return float64(r.Tenure), true
	case FeatureMonthlyCharges:
		return r.MonthlyCharges, true
	case FeatureTotalCharges:
		return r.TotalCharges, true
	case FeatureSeniorCitizen:
		return boolToFloat(r.SeniorCitizen == Yes), true
	case FeatureTotalServices:
		return float64(r.TotalServices), true
	case FeatureMonthlyTenureRatio:
		return r.MonthlyTenureRatio, true
	case FeatureIsFiber:
		return float64(r.IsFiber), true
	case FeatureHasSecuritySupport:
		return float64(r.HasSecuritySupport), true
	case FeatureIsHighRisk:
		return float64(r.IsHighRisk), true
	}
	return 0, false
}

// Categorical returns the value of a categorical feature by canonical name.
func (r *EnrichedRecord) Categorical(name string) (string, bool) {
	switch name {
	case FeatureGender:
		return string(r.Gender), true
	case FeaturePartner:
		return string(r.Partner), true
	case FeatureDependents:
		return string(r.Dependents), true
	case FeaturePhoneService:
		return string(r.PhoneService), true
	case FeatureMultipleLines:
		return string(r.MultipleLines), true
	case FeatureInternetService:
		return string(r.InternetService), true
	case FeatureOnlineSecurity:
		return string(r.OnlineSecurity), true
	case FeatureOnlineBackup:
		return string(r.OnlineBackup), true
	case FeatureDeviceProtection:
		return string(r.DeviceProtection), true
	case FeatureTechSupport:
		return string(r.TechSupport), true
	case FeatureStreamingTV:
		return string(r.StreamingTV), true
	case FeatureStreamingMovies:
		return string(r.StreamingMovies), true
	case FeatureContract:
		return string(r.Contract), true
	case FeaturePaperlessBilling:
		return string(r.PaperlessBilling), true
	case FeaturePaymentMethod:
		return string(r.PaymentMethod), true
	case FeatureTenureBucket:
		return string(r.TenureBucket), true
	}
	return "", false
}

// IsNumericFeature reports whether name is addressable through Numeric.
func IsNumericFeature(name string) bool {
	_, ok := (&EnrichedRecord{}).Numeric(name)
	return ok
}

// IsCategoricalFeature reports whether name is addressable through Categorical.
func IsCategoricalFeature(name string) bool {
	_, ok := (&EnrichedRecord{}).Categorical(name)
	return ok
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
