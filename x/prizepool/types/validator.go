package types

import "cosmossdk.io/math"

// Validator is one entry of the Delegation Router's validator table
// (spec.md §3, §4.1).
type Validator struct {
	Address          string   `json:"address"`
	Weight           Fraction `json:"weight"`
	Delegated        math.Int `json:"delegated"`
	PercentageFilled int64    `json:"percentage_filled"`
}

// IdealDelegated returns weight * totalDelegated / divisor, the Router's
// rebalancing target for this validator (spec.md §4.1).
func (v Validator) IdealDelegated(totalDelegated math.Int) math.Int {
	return v.Weight.MulInt(totalDelegated)
}

// RecomputeFilled refreshes the best-effort percentage_filled observability
// metric; it must never gate correctness (spec.md §4.1).
func (v *Validator) RecomputeFilled(totalDelegated math.Int) {
	ideal := v.IdealDelegated(totalDelegated)
	if ideal.IsZero() {
		v.PercentageFilled = 0
		return
	}
	v.PercentageFilled = v.Delegated.Mul(DefaultDivisor).Quo(ideal).Int64()
}

// ValidatorWithWeight is the external input shape for UpdateValidatorSet
// (spec.md §6), an address/weight pair with no delegated-amount field.
type ValidatorWithWeight struct {
	Address string   `json:"address"`
	Weight  Fraction `json:"weight"`
}
