package wire

import (
	"github.com/sat20-labs/emission/common"
)

// AttachedReq carries the value attached to a call, a decimal string.
type AttachedReq struct {
	AttachedDeposit *common.U128 `json:"attached_deposit"`
}

func (r *AttachedReq) Attached() common.U128 {
	if r.AttachedDeposit == nil {
		return common.U128{}
	}
	return *r.AttachedDeposit
}

type InitReq struct {
	AttachedReq
	TotalSupply common.U128 `json:"total_supply"`
}

type MintReq struct {
	AttachedReq
}

type MintResp struct {
	BaseResp
	Data *MintData `json:"data"`
}

type MintData struct {
	Minted common.U128 `json:"minted"`
	Month  uint32      `json:"current_month"`
}

type BurnReq struct {
	AttachedReq
	Amount common.U128 `json:"amount"`
}

type ClaimRewardsReq struct {
	AttachedReq
	Amount      common.U128 `json:"amount"`
	PoolId      uint32      `json:"pool_id"`
	UserAccount string      `json:"user_account" binding:"required"`
}

type InitiateTransferReq struct {
	AttachedReq
	NewOwner string `json:"new_owner" binding:"required"`
}

type AcceptTransferReq struct {
	AttachedReq
}

type OwnersResp struct {
	BaseResp
	Data *Owners `json:"data"`
}

type Owners struct {
	OwnerId       string  `json:"owner_id"`
	ProposedOwner *string `json:"proposed_owner"`
}

// EmissionsAccount renders u64 fields as decimal strings.
type EmissionsAccount struct {
	InitialEmissions  string  `json:"initial_emissions"`
	DecayFactor       float64 `json:"decay_factor"`
	CurrentMonth      uint32  `json:"current_month"`
	CurrentEmissions  string  `json:"current_emissions"`
	LastMintTimestamp string  `json:"last_mint_timestamp"`
}

type EmissionsAccountResp struct {
	BaseResp
	Data *EmissionsAccount `json:"data"`
}

type RafflePool struct {
	PoolId      uint32      `json:"pool_id"`
	Amount      common.U128 `json:"amount"`
	TotalAmount common.U128 `json:"total_amount"`
}

type TappingPool struct {
	PoolId uint32      `json:"pool_id"`
	Amount common.U128 `json:"amount"`
}

type Pools struct {
	Raffle  *RafflePool  `json:"raffle"`
	Tapping *TappingPool `json:"tapping"`
}

type PoolsResp struct {
	BaseResp
	Data *Pools `json:"data"`
}

type EventsResp struct {
	BaseResp
	ListResp
	Data any `json:"data"`
}
