package contract

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

// ClaimRewards pays amount out of the selected reward pool to user. The
// owner, who receives every minted emission, is the paying account. An
// unregistered user is registered first, funded by the attached deposit.
func (p *Contract) ClaimRewards(env *Env, amount uint128.Uint128, poolId uint32, user common.AccountId) error {
	if err := user.Validate(); err != nil {
		return err
	}
	return p.mutate(env, "claim_rewards", func(txn *store.Txn) error {
		o, err := authorize(txn, env, capOwnerFund)
		if err != nil {
			return err
		}
		p.logger.Infof("Caller ID: %s", env.Caller)
		p.logger.Infof("Owner ID: %s", o.Owner)

		if amount.IsZero() {
			return errors.Wrap(common.ErrInvalidArgument, "invalid amount to claim")
		}
		if err := checkPoolId(poolId); err != nil {
			return err
		}

		registered, err := p.ledger.IsRegistered(txn, user)
		if err != nil {
			return err
		}
		if !registered {
			minBalance := p.ledger.MinStorageBalance()
			if env.AttachedDeposit.Cmp(minBalance) < 0 {
				return errors.Wrapf(common.ErrInsufficientDeposit,
					"attached deposit %s is less than the minimum storage balance %s required for account registration",
					env.AttachedDeposit, minBalance)
			}
			if err := p.ledger.Register(txn, user); err != nil {
				return err
			}
			p.logger.Infof("Storage deposit successful for account: %s", user)
		}

		if err := debitPool(txn, poolId, amount); err != nil {
			return err
		}

		memo := fmt.Sprintf(common.MEMO_CLAIM_FORMAT, poolId)
		if err := p.ledger.Transfer(txn, o.Owner, user, amount, memo); err != nil {
			return err
		}
		if err := p.emit(txn, env, NewFtTransfer(o.Owner, user, amount, memo)); err != nil {
			return err
		}
		p.logger.Infof("%s tokens claimed from Pool ID: %d by %s", amount, poolId, env.Caller)
		return nil
	})
}
