// Package numeric holds small generic arithmetic helpers (CeilDiv is used by
// the IHDR geometry derivation), in the spirit of the teacher stack's
// stdlib-replacement generics (abs, clamp) built on golang.org/x/exp/constraints
// instead of hand-duplicating bounds checks at each call site.
package numeric

import "golang.org/x/exp/constraints"

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// CeilDiv computes ceil(numerator/denominator) for non-negative integers.
func CeilDiv[T constraints.Integer](numerator, denominator T) T {
	if denominator == 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}
