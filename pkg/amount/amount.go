// Package amount converts between ledger minor units (e8s, e12s) held as
// arbitrary precision naturals and their decimal float form.
package amount

import (
	"math"
	"math/big"
)

const (
	// E8s is the number of minor units in one ICP.
	E8s = 100_000_000
	// E12s is the number of cycles in one trillion cycles.
	E12s = 1_000_000_000_000
)

// NatToF64 converts n to the nearest float64. Nil is zero.
func NatToF64(n *big.Int) float64 {
	if n == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// F64ToU64 rounds f to the nearest integer, saturating at the uint64 bounds.
func F64ToU64(f float64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(math.Round(f))
}

// NatToU64 converts n to uint64 through its float form.
func NatToU64(n *big.Int) uint64 {
	return F64ToU64(NatToF64(n))
}

// F64ToE8s converts a decimal token amount to minor units, rounding to the
// nearest unit so that E8sToF64 round trips. Negative and NaN inputs are zero.
func F64ToE8s(f float64) *big.Int {
	return scale(f, E8s)
}

// E8sToF64 converts minor units to a decimal token amount.
func E8sToF64(n *big.Int) float64 {
	return NatToF64(n) / E8s
}

// E12sToF64 converts cycles to trillions of cycles.
func E12sToF64(n *big.Int) float64 {
	return NatToF64(n) / E12s
}

// U64 is shorthand for big.NewInt over an unsigned value.
func U64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func scale(f float64, unit float64) *big.Int {
	if math.IsNaN(f) || f <= 0 {
		return new(big.Int)
	}
	scaled := new(big.Float).SetFloat64(math.Round(f * unit))
	out, _ := scaled.Int(nil)
	return out
}
