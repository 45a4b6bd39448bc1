package contract

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

// Burn destroys amount of the caller's own tokens.
func (p *Contract) Burn(env *Env, amount uint128.Uint128) error {
	return p.mutate(env, "burn", func(txn *store.Txn) error {
		if _, err := authorize(txn, env, capAnyone); err != nil {
			return err
		}
		if amount.IsZero() {
			return errors.Wrap(common.ErrInvalidArgument, "burn amount must be greater than zero")
		}
		balance, err := p.ledger.BalanceOf(txn, env.Caller)
		if err != nil {
			return err
		}
		if balance.Cmp(amount) < 0 {
			return errors.Wrapf(common.ErrInsufficientBalance,
				"insufficient balance. Available: %s, Required: %s", balance, amount)
		}
		if err := p.ledger.Withdraw(txn, env.Caller, amount); err != nil {
			return err
		}
		if err := p.emit(txn, env, NewFtBurn(env.Caller, amount, common.MEMO_BURN)); err != nil {
			return err
		}
		p.logger.Infof("%s tokens burned by %s", amount, env.Caller)
		return nil
	})
}
