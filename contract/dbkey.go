package contract

import (
	"fmt"

	"github.com/sat20-labs/emission/common"
)

const (
	DB_KEY_OWNERSHIP     = "c-owner"
	DB_PREFIX_EMISSIONS  = "c-em-"
	DB_PREFIX_POOL       = "c-pool-"
	DB_PREFIX_EVENT      = "ev-"
	DB_KEY_EVENT_SEQ     = "seq-ev"
	DB_KEY_STATE_VERSION = "c-version"
)

func GetEmissionsKey(owner common.AccountId) []byte {
	return []byte(DB_PREFIX_EMISSIONS + string(owner))
}

func GetPoolKey(poolId uint32) []byte {
	return []byte(fmt.Sprintf("%s%d", DB_PREFIX_POOL, poolId))
}

// event keys sort by sequence
func GetEventKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%016x", DB_PREFIX_EVENT, seq))
}
