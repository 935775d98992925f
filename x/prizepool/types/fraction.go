package types

import "cosmossdk.io/math"

// DefaultDivisor is the process-wide common_divisor used for every
// percentage-like fraction in the module (spec.md §3), four-decimal
// precision (10000ths).
var DefaultDivisor = math.NewInt(10000)

// Fraction is a (numerator, divisor) pair, never pre-divided (spec.md §9
// "Integer math discipline"). The divisor is carried per-fraction instead of
// assumed global so historical rounds keep whatever divisor they were sealed
// with even if Config.common_divisor changes later.
type Fraction struct {
	Numerator math.Int `json:"numerator"`
	Divisor   math.Int `json:"divisor"`
}

// NewFraction builds a Fraction against the module's default divisor.
func NewFraction(numerator int64) Fraction {
	return Fraction{Numerator: math.NewInt(numerator), Divisor: DefaultDivisor}
}

// MulInt computes x * numerator / divisor with multiply-before-divide, never
// pre-dividing (spec.md §9).
func (f Fraction) MulInt(x math.Int) math.Int {
	if f.Divisor.IsNil() || f.Divisor.IsZero() {
		return math.ZeroInt()
	}
	return x.Mul(f.Numerator).Quo(f.Divisor)
}

// IsValid reports whether the fraction's divisor is positive and its
// numerator is within [0, divisor] (a share fraction can never exceed 100%).
func (f Fraction) IsValid() bool {
	if f.Divisor.IsNil() || f.Numerator.IsNil() {
		return false
	}
	return f.Divisor.IsPositive() && !f.Numerator.IsNegative() && f.Numerator.LTE(f.Divisor)
}

// Add returns the sum of two fractions' numerators over a shared divisor,
// used to validate that partition fractions sum to the common divisor
// (spec.md I5).
func (f Fraction) Add(other Fraction) Fraction {
	return Fraction{Numerator: f.Numerator.Add(other.Numerator), Divisor: f.Divisor}
}

// SumsTo100Percent reports whether f's numerator equals its divisor, i.e. the
// fraction fully partitions its base value (spec.md I5).
func (f Fraction) SumsTo100Percent() bool {
	return f.Numerator.Equal(f.Divisor)
}
