// Package risk maps a churn probability to a decision, a risk tier and a
// recommended action.
//
// Two independent cutoff schemes are applied to the same probability:
//
//   - the decision threshold (default 0.20, overridable) yields Yes/No;
//   - a fixed ordered tier table yields HIGH (≥0.5), MEDIUM (≥0.3) or LOW.
//
// The two are not reconciled: p = 0.25 is a "Yes" decision in the LOW tier.
package risk
