package emission

import (
	"strconv"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/contract"
	"github.com/sat20-labs/emission/rpcserver/wire"
)

type Model struct {
	contract *contract.Contract
}

func NewModel(c *contract.Contract) *Model {
	return &Model{
		contract: c,
	}
}

func (s *Model) getOwners() (*wire.Owners, error) {
	owner, candidate, err := s.contract.Owners()
	if err != nil {
		return nil, err
	}
	ret := &wire.Owners{OwnerId: string(owner)}
	if candidate != "" {
		proposed := string(candidate)
		ret.ProposedOwner = &proposed
	}
	return ret, nil
}

func (s *Model) getEmissionsAccount(account string) (*wire.EmissionsAccount, error) {
	id, err := common.ParseAccountId(account)
	if err != nil {
		return nil, err
	}
	acct, err := s.contract.EmissionsAccount(id)
	if err != nil {
		return nil, err
	}
	return &wire.EmissionsAccount{
		InitialEmissions:  strconv.FormatUint(acct.InitialEmissions, 10),
		DecayFactor:       acct.DecayFactor,
		CurrentMonth:      acct.CurrentMonth,
		CurrentEmissions:  strconv.FormatUint(acct.CurrentEmissions, 10),
		LastMintTimestamp: strconv.FormatUint(acct.LastMintTimestamp, 10),
	}, nil
}

func (s *Model) getPools() (*wire.Pools, error) {
	raffle, err := s.contract.RafflePool()
	if err != nil {
		return nil, err
	}
	tapping, err := s.contract.TappingPool()
	if err != nil {
		return nil, err
	}
	return &wire.Pools{
		Raffle: &wire.RafflePool{
			PoolId:      raffle.PoolId,
			Amount:      common.NewU128(raffle.Amount),
			TotalAmount: common.NewU128(raffle.TotalAmount),
		},
		Tapping: &wire.TappingPool{
			PoolId: tapping.PoolId,
			Amount: common.NewU128(tapping.Amount),
		},
	}, nil
}
