package contract

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/ledger"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

// FtTransfer moves the caller's tokens to receiver.
func (p *Contract) FtTransfer(env *Env, receiver common.AccountId, amount uint128.Uint128, memo string) error {
	if err := receiver.Validate(); err != nil {
		return err
	}
	return p.mutate(env, "ft_transfer", func(txn *store.Txn) error {
		if _, err := authorize(txn, env, capSigned); err != nil {
			return err
		}
		if err := p.ledger.Transfer(txn, env.Caller, receiver, amount, memo); err != nil {
			return err
		}
		return p.emit(txn, env, NewFtTransfer(env.Caller, receiver, amount, memo))
	})
}

// StorageDeposit registers account, or the caller when account is empty. The
// returned refund is the part of the attached deposit not kept for storage.
func (p *Contract) StorageDeposit(env *Env, account common.AccountId) (*ledger.StorageBalance, uint128.Uint128, error) {
	if account == "" {
		account = env.Caller
	}
	if err := account.Validate(); err != nil {
		return nil, uint128.Zero, err
	}
	var (
		balance *ledger.StorageBalance
		refund  uint128.Uint128
	)
	err := p.mutate(env, "storage_deposit", func(txn *store.Txn) error {
		if _, err := authorize(txn, env, capAnyone); err != nil {
			return err
		}
		var err error
		balance, refund, err = p.ledger.StorageDeposit(txn, account, env.AttachedDeposit)
		return err
	})
	if err != nil {
		return nil, uint128.Zero, err
	}
	return balance, refund, nil
}

func (p *Contract) FtBalanceOf(account common.AccountId) (uint128.Uint128, error) {
	var bal uint128.Uint128
	err := p.view(func(txn *store.Txn) error {
		var err error
		bal, err = p.ledger.BalanceOf(txn, account)
		return err
	})
	return bal, err
}

func (p *Contract) FtTotalSupply() (uint128.Uint128, error) {
	var total uint128.Uint128
	err := p.view(func(txn *store.Txn) error {
		var err error
		total, err = p.ledger.TotalSupply(txn)
		return err
	})
	return total, err
}

func (p *Contract) FtMetadata() (*ledger.FungibleTokenMetadata, error) {
	var m *ledger.FungibleTokenMetadata
	err := p.view(func(txn *store.Txn) error {
		var err error
		m, err = p.ledger.Metadata(txn)
		return err
	})
	return m, err
}

// StorageBalanceOf returns nil for unregistered accounts.
func (p *Contract) StorageBalanceOf(account common.AccountId) (*ledger.StorageBalance, error) {
	var sb *ledger.StorageBalance
	err := p.view(func(txn *store.Txn) error {
		var err error
		sb, err = p.ledger.StorageBalanceOf(txn, account)
		return err
	})
	return sb, err
}

func (p *Contract) StorageBalanceBounds() ledger.StorageBalanceBounds {
	return p.ledger.StorageBalanceBounds()
}

// Snapshot is a consistent read of the whole engine state.
type Snapshot struct {
	Owner        common.AccountId
	Candidate    common.AccountId
	Emissions    *EmissionsAccount
	Raffle       *RafflePool
	Tapping      *TappingPool
	TotalSupply  uint128.Uint128
	OwnerBalance uint128.Uint128
}

func (p *Contract) Snapshot() (*Snapshot, error) {
	s := &Snapshot{}
	err := p.view(func(txn *store.Txn) error {
		o, err := loadOwnership(txn)
		if err != nil {
			return err
		}
		s.Owner = o.Owner
		s.Candidate, _ = o.Pending()
		if s.Emissions, err = loadEmissionsAccount(txn, o.Owner); err != nil && !errors.Is(err, common.ErrNotInitialized) {
			return err
		}
		if s.Raffle, err = loadRafflePool(txn); err != nil {
			return err
		}
		if s.Tapping, err = loadTappingPool(txn); err != nil {
			return err
		}
		if s.TotalSupply, err = p.ledger.TotalSupply(txn); err != nil {
			return err
		}
		s.OwnerBalance, err = p.ledger.BalanceOf(txn, o.Owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
