package ledger

import (
	"github.com/sat20-labs/emission/common"
)

const (
	DB_PREFIX_ACCOUNT = "ft-a-"
	DB_KEY_SUPPLY     = "ft-supply"
	DB_KEY_METADATA   = "ft-meta"
)

func GetAccountKey(account common.AccountId) []byte {
	return []byte(DB_PREFIX_ACCOUNT + string(account))
}
