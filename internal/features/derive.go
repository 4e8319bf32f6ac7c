package features

import (
	"strconv"

	"github.com/churnguard/churnguard/pkg/types"
)

// tenureBins are the upper edges of the left-open, right-closed tenure bins,
// in ascending order. The first bin's lower edge is 0.
var tenureBins = []struct {
	upper  int
	bucket types.TenureBucket
}{
	{12, types.TenureNew},
	{36, types.TenureEstablished},
	{72, types.TenureLoyal},
}

// Derive validates rec and returns a new EnrichedRecord carrying its
// derived features. rec is not modified.
func Derive(rec types.CustomerRecord) (*types.EnrichedRecord, error) {
	if err := Validate(&rec); err != nil {
		return nil, err
	}

	return &types.EnrichedRecord{
		CustomerRecord:     rec,
		TenureBucket:       TenureBucket(rec.Tenure),
		TotalServices:      TotalServices(&rec),
		MonthlyTenureRatio: MonthlyTenureRatio(rec.MonthlyCharges, rec.Tenure),
		IsFiber:            flag(rec.InternetService == types.InternetFiber),
		HasSecuritySupport: flag(rec.OnlineSecurity == types.AddonYes || rec.TechSupport == types.AddonYes),
		IsHighRisk:         flag(rec.Contract == types.ContractMonthToMonth && rec.Tenure < 12),
	}, nil
}

// TenureBucket maps tenure months to a bucket. Bins are (0,12], (12,36] and
// (36,72]; anything outside them, including 0, is TenureUnbucketed.
func TenureBucket(tenure int) types.TenureBucket {
	lower := 0
	for _, b := range tenureBins {
		if tenure > lower && tenure <= b.upper {
			return b.bucket
		}
		lower = b.upper
	}
	return types.TenureUnbucketed
}

// TotalServices counts the service flags set to exactly "Yes".
// "No" and the not-applicable sentinels count as zero.
func TotalServices(rec *types.CustomerRecord) int {
	flags := []string{
		string(rec.PhoneService),
		string(rec.OnlineSecurity),
		string(rec.OnlineBackup),
		string(rec.DeviceProtection),
		string(rec.TechSupport),
		string(rec.StreamingTV),
		string(rec.StreamingMovies),
	}
	n := 0
	for _, f := range flags {
		if f == "Yes" {
			n++
		}
	}
	return n
}

// MonthlyTenureRatio is monthlyCharges / (tenure + 1). The +1 applies
// unconditionally so a tenure of 0 divides by 1.
func MonthlyTenureRatio(monthlyCharges float64, tenure int) float64 {
	return monthlyCharges / float64(tenure+1)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func format[T int | float64](v T) string {
	switch x := any(v).(type) {
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return ""
}
