package common

import (
	"encoding/json"
	"math/big"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// CheckedAdd returns a+b, or false when the sum does not fit in 128 bits.
func CheckedAdd(a, b uint128.Uint128) (uint128.Uint128, bool) {
	sum := a.AddWrap(b)
	if sum.Cmp(a) < 0 {
		return uint128.Zero, false
	}
	return sum, true
}

// CheckedSub returns a-b, or false when b > a.
func CheckedSub(a, b uint128.Uint128) (uint128.Uint128, bool) {
	if a.Cmp(b) < 0 {
		return uint128.Zero, false
	}
	return a.Sub(b), true
}

// CheckedMul64 returns a*b, or false when the product does not fit in 128 bits.
func CheckedMul64(a uint128.Uint128, b uint64) (uint128.Uint128, bool) {
	hiCarry, lo := bits.Mul64(a.Lo, b)
	hiOverflow, hi := bits.Mul64(a.Hi, b)
	if hiOverflow != 0 {
		return uint128.Zero, false
	}
	hi, carry := bits.Add64(hi, hiCarry, 0)
	if carry != 0 {
		return uint128.Zero, false
	}
	return uint128.New(lo, hi), true
}

func ParseAmount(s string) (uint128.Uint128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uint128.Zero, errors.Wrap(ErrInvalidArgument, "empty amount")
	}
	v, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(ErrInvalidArgument, "invalid amount %q: %v", s, err)
	}
	return v, nil
}

func MustParseAmount(s string) uint128.Uint128 {
	v, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatAmount renders a raw ledger amount with the given number of decimals,
// e.g. 300000 with 5 decimals is "3.00000".
func FormatAmount(v uint128.Uint128, decimals uint8) string {
	if decimals == 0 {
		return v.String()
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(v.Big(), scale, new(big.Int))
	frac := rem.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	return quo.String() + "." + frac
}

// U128 carries a u128 across JSON as a decimal string, so javascript clients
// never lose precision.
type U128 struct {
	uint128.Uint128
}

func NewU128(v uint128.Uint128) U128 {
	return U128{Uint128: v}
}

func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Uint128.String())
}

func (u *U128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "amount must be a decimal string: %s", string(data))
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	u.Uint128 = v
	return nil
}
