package contract

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

// EmissionsAccount is the decaying mint schedule of one owner.
// CurrentMonth is zero until the first mint; CurrentEmissions is decayed
// before every mint after that.
type EmissionsAccount struct {
	InitialEmissions  uint64
	DecayFactor       float64
	CurrentMonth      uint32
	CurrentEmissions  uint64
	LastMintTimestamp uint64
}

func newEmissionsAccount(params *Params, now uint64) *EmissionsAccount {
	return &EmissionsAccount{
		InitialEmissions:  params.InitialEmissions,
		DecayFactor:       params.DecayFactor,
		CurrentMonth:      0,
		CurrentEmissions:  params.InitialEmissions,
		LastMintTimestamp: now,
	}
}

func loadEmissionsAccount(txn *store.Txn, owner common.AccountId) (*EmissionsAccount, error) {
	acct, err := store.NewCache[EmissionsAccount](txn).Get(GetEmissionsKey(owner))
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.Wrapf(common.ErrNotInitialized, "emissions account of %s not found", owner)
	}
	return acct, nil
}

// elapsedSeconds compares whole seconds. A clock behind the last mint counts
// as no time elapsed.
func elapsedSeconds(now, last uint64) uint64 {
	nowS := now / common.NANOS_PER_SECOND
	lastS := last / common.NANOS_PER_SECOND
	if nowS <= lastS {
		return 0
	}
	return nowS - lastS
}

// Mint advances the owner's emission schedule by one period, depositing the
// period's emission to the owner, resetting the tapping pool and decaying
// the raffle pool's inflow.
func (p *Contract) Mint(env *Env) (uint128.Uint128, error) {
	var minted uint128.Uint128
	err := p.mutate(env, "mint", func(txn *store.Txn) error {
		o, err := authorize(txn, env, capOwner)
		if err != nil {
			return err
		}
		p.logger.Infof("Caller ID: %s", env.Caller)
		p.logger.Infof("Owner ID: %s", o.Owner)

		acct, err := loadEmissionsAccount(txn, o.Owner)
		if err != nil {
			return err
		}
		raffle, err := loadRafflePool(txn)
		if err != nil {
			return err
		}
		tapping, err := loadTappingPool(txn)
		if err != nil {
			return err
		}

		decaying := acct.CurrentMonth > 0
		if decaying {
			elapsed := elapsedSeconds(env.Timestamp, acct.LastMintTimestamp)
			p.logger.Infof("Current timestamp: %d, Last mint timestamp: %d, Time passed: %d",
				env.Timestamp/common.NANOS_PER_SECOND, acct.LastMintTimestamp/common.NANOS_PER_SECOND, elapsed)
			if elapsed < p.params.PeriodSeconds {
				return errors.Wrapf(common.ErrIntervalNotElapsed,
					"the required interval has not yet passed, %d of %d seconds", elapsed, p.params.PeriodSeconds)
			}
			acct.CurrentEmissions = DecayU64(acct.CurrentEmissions, acct.DecayFactor)
		}

		amount, ok := common.CheckedMul64(uint128.From64(acct.CurrentEmissions), p.params.MintScaling)
		if !ok {
			return errors.Wrap(common.ErrArithmeticOverflow, "mint amount multiplication overflow")
		}
		if err := p.ledger.Deposit(txn, o.Owner, amount); err != nil {
			return err
		}
		if err := p.emit(txn, env, NewFtMint(o.Owner, amount, common.MEMO_MINT)); err != nil {
			return err
		}

		tapping.Amount = p.params.TappingPoolAmount
		if err := saveTappingPool(txn, tapping); err != nil {
			return err
		}

		if decaying {
			raffle.Amount = Decay(raffle.Amount, acct.DecayFactor)
		}
		total, ok := common.CheckedAdd(raffle.TotalAmount, raffle.Amount)
		if !ok {
			return errors.Wrap(common.ErrArithmeticOverflow, "raffle total amount addition overflow")
		}
		raffle.TotalAmount = total
		if err := saveRafflePool(txn, raffle); err != nil {
			return err
		}

		if acct.CurrentMonth == ^uint32(0) {
			return errors.Wrap(common.ErrArithmeticOverflow, "current month addition overflow")
		}
		acct.CurrentMonth++
		acct.LastMintTimestamp = env.Timestamp
		if err := store.NewCache[EmissionsAccount](txn).Set(GetEmissionsKey(o.Owner), acct); err != nil {
			return err
		}

		minted = amount
		p.logger.Infof("Mint operation completed successfully! month %d, minted %s", acct.CurrentMonth, amount)
		return nil
	})
	return minted, err
}

func (p *Contract) EmissionsAccount(owner common.AccountId) (*EmissionsAccount, error) {
	var acct *EmissionsAccount
	err := p.view(func(txn *store.Txn) error {
		var err error
		acct, err = loadEmissionsAccount(txn, owner)
		return err
	})
	return acct, err
}
