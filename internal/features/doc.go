// Package features turns a raw types.CustomerRecord into a types.EnrichedRecord.
//
// Validate rejects the first field outside its declared domain, walking the
// record in schema order. Derive validates and then computes the derived
// features:
//
//	tenure_bucket         (0,12] New, (12,36] Established, (36,72] Loyal, else Unbucketed
//	total_services        count of "Yes" across the seven service flags
//	monthly_tenure_ratio  monthly_charges / (tenure + 1)
//	is_fiber              internet_service == "Fiber optic"
//	has_security_support  online_security == "Yes" || tech_support == "Yes"
//	is_high_risk          contract == "Month-to-month" && tenure < 12
//
// Everything here is pure: no I/O, no shared state.
package features
