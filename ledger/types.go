package ledger

import (
	"github.com/sat20-labs/emission/common"
	"lukechampine.com/uint128"
)

// Account exists for every registered account, holding its balance.
type Account struct {
	Balance uint128.Uint128
}

type Supply struct {
	Total uint128.Uint128
}

type FungibleTokenMetadata struct {
	Spec          string  `json:"spec"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Icon          *string `json:"icon"`
	Reference     *string `json:"reference"`
	ReferenceHash *string `json:"reference_hash"`
	Decimals      uint8   `json:"decimals"`
}

func (m *FungibleTokenMetadata) Validate() error {
	if m.Spec != common.FT_METADATA_SPEC {
		return errInvalidMetadata("spec %q", m.Spec)
	}
	if m.Name == "" || m.Symbol == "" {
		return errInvalidMetadata("name and symbol are required")
	}
	if (m.Reference == nil) != (m.ReferenceHash == nil) {
		return errInvalidMetadata("reference and reference_hash must be set together")
	}
	return nil
}

func DefaultMetadata() *FungibleTokenMetadata {
	icon := common.FT_ICON
	return &FungibleTokenMetadata{
		Spec:     common.FT_METADATA_SPEC,
		Name:     common.FT_NAME,
		Symbol:   common.FT_SYMBOL,
		Icon:     &icon,
		Decimals: common.FT_DECIMALS,
	}
}

type StorageBalance struct {
	Total     common.U128 `json:"total"`
	Available common.U128 `json:"available"`
}

type StorageBalanceBounds struct {
	Min common.U128  `json:"min"`
	Max *common.U128 `json:"max"`
}
