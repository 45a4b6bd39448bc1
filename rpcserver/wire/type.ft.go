package wire

import (
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/ledger"
)

type FtTransferReq struct {
	AttachedReq
	ReceiverId string      `json:"receiver_id" binding:"required"`
	Amount     common.U128 `json:"amount"`
	Memo       string      `json:"memo"`
}

type StorageDepositReq struct {
	AttachedReq
	AccountId string `json:"account_id"`
	// accepted for compatibility, deposits are always registration only
	RegistrationOnly *bool `json:"registration_only"`
}

type StorageDepositData struct {
	Balance *ledger.StorageBalance `json:"balance"`
	Refund  common.U128            `json:"refund"`
}

type StorageDepositResp struct {
	BaseResp
	Data *StorageDepositData `json:"data"`
}

type AmountResp struct {
	BaseResp
	Data common.U128 `json:"data"`
}

type MetadataResp struct {
	BaseResp
	Data *ledger.FungibleTokenMetadata `json:"data"`
}

type StorageBalanceResp struct {
	BaseResp
	Data *ledger.StorageBalance `json:"data"`
}

type StorageBoundsResp struct {
	BaseResp
	Data *ledger.StorageBalanceBounds `json:"data"`
}

type HealthStatusResp struct {
	Status      string `json:"status" example:"ok"`
	Version     string `json:"version" example:"1.2.0"`
	StateDBVer  string `json:"state_db_ver" example:"1.1.0"`
	ContractId  string `json:"contract_id"`
	Initialized bool   `json:"initialized"`
}
