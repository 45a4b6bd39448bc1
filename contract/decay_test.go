package contract

import (
	"math"
	"testing"

	"github.com/sat20-labs/emission/common"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/uint128"
)

func TestDecayU64MatchesNativeConversion(t *testing.T) {
	f := common.DEFAULT_DECAY_FACTOR
	for _, v := range []uint64{0, 1, 7, 3_000_000_000, 2_611_651_689, 1 << 53, 1<<53 + 1, math.MaxUint64 / 3} {
		assert.Equal(t, uint64(float64(v)*f), DecayU64(v, f), "value %d", v)
	}
	assert.Equal(t, uint64(0), DecayU64(1, f))
}

func TestDecayU128(t *testing.T) {
	f := common.DEFAULT_DECAY_FACTOR
	raffle := common.DEFAULT_RAFFLE_POOL_AMOUNT
	assert.Equal(t, uint128.From64(uint64(5e12*f)), Decay(raffle, f))

	// 2^64+1 rounds to 2^64 before the multiply
	assert.Equal(t, uint128.From64(1<<63), Decay(uint128.New(1, 1), 0.5))

	assert.Equal(t, uint128.Max, Decay(uint128.Max, 2))
	assert.True(t, Decay(uint128.From64(10), math.NaN()).IsZero())
	assert.True(t, Decay(uint128.From64(10), -1).IsZero())
	assert.Equal(t, uint64(math.MaxUint64), DecayU64(math.MaxUint64, 4))
}

func TestDecayNeverGrows(t *testing.T) {
	v := uint128.From64(5_000_000_000_000)
	for i := 0; i < 300; i++ {
		next := Decay(v, common.DEFAULT_DECAY_FACTOR)
		assert.True(t, next.Cmp(v) <= 0)
		v = next
	}
	assert.True(t, v.IsZero())
}
