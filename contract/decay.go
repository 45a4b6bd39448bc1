package contract

import (
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// Decay returns floor(value * factor). The value is first rounded to the
// nearest binary64, the product is taken in binary64 and truncated back to
// an integer, saturating at the bounds of u128. A NaN product yields zero.
func Decay(value uint128.Uint128, factor float64) uint128.Uint128 {
	f := new(big.Float).SetPrec(53).SetMode(big.ToNearestEven).SetInt(value.Big())
	x, _ := f.Float64()
	p := x * factor
	switch {
	case math.IsNaN(p) || p <= 0:
		return uint128.Zero
	case math.IsInf(p, 1):
		return uint128.Max
	}
	n, _ := new(big.Float).SetFloat64(p).Int(nil)
	if n.BitLen() > 128 {
		return uint128.Max
	}
	return uint128.FromBig(n)
}

// DecayU64 is Decay in the u64 domain, saturating at the u64 maximum.
func DecayU64(value uint64, factor float64) uint64 {
	r := Decay(uint128.From64(value), factor)
	if r.Hi != 0 {
		return math.MaxUint64
	}
	return r.Lo
}
