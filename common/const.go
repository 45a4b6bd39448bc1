package common

import (
	"lukechampine.com/uint128"
)

const (
	POOL_ID_RAFFLE  uint32 = 1
	POOL_ID_TAPPING uint32 = 2
)

const (
	DEFAULT_INITIAL_EMISSIONS uint64  = 3_000_000_000
	DEFAULT_DECAY_FACTOR      float64 = 0.8705505633

	// every emission unit is minted with the token's 5 decimals
	MINT_SCALING_FACTOR uint64 = 100_000

	SECONDS_IN_A_MONTH uint64 = 30 * 24 * 60 * 60
	NANOS_PER_SECOND   uint64 = 1_000_000_000
)

var (
	DEFAULT_RAFFLE_POOL_AMOUNT  = uint128.From64(50_000_000_00000)
	DEFAULT_TAPPING_POOL_AMOUNT = uint128.From64(1_000_000_000_00000)

	// attached value proving a deliberate, signed call
	AUTH_TOKEN_AMOUNT = uint128.From64(1)

	// 125 bytes of account storage at 1e19 per byte
	DEFAULT_MIN_STORAGE_BALANCE = MustParseAmount("1250000000000000000000")
)

const (
	FT_METADATA_SPEC  = "ft-1.0.0"
	FT_NAME           = "PUSH THE BUTTON PTB"
	FT_SYMBOL         = "PUSH"
	FT_DECIMALS       = uint8(5)
	FT_ICON           = "https://red-defensive-termite-556.mypinata.cloud/ipfs/QmUCUAABBsqkhSw3HoeMtecwVAeKBmxUgj2GLwmxuNojbV"
	NEP141_STANDARD   = "nep141"
	NEP141_VERSION    = "1.0.0"
	EVENT_JSON_PREFIX = "EVENT_JSON:"
	MEMO_MINT         = "Tokens minted after emissions decay and interval reset"
	MEMO_BURN         = "Burning tokens from user's account"
	MEMO_CLAIM_FORMAT = "Reward claim from pool_id: %d"
)
