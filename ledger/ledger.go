package ledger

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"github.com/sirupsen/logrus"
	"lukechampine.com/uint128"
)

func errInvalidMetadata(format string, args ...any) error {
	return errors.Wrapf(common.ErrInvalidArgument, "metadata: "+format, args...)
}

// FungibleToken keeps balances, total supply and storage registration.
// Every method operates inside the caller's transaction.
type FungibleToken struct {
	minStorageBalance uint128.Uint128
	logger            *logrus.Entry
}

func NewFungibleToken(minStorageBalance uint128.Uint128) *FungibleToken {
	return &FungibleToken{
		minStorageBalance: minStorageBalance,
		logger:            common.GetLoggerEntry("ledger"),
	}
}

func (p *FungibleToken) MinStorageBalance() uint128.Uint128 {
	return p.minStorageBalance
}

func (p *FungibleToken) getAccount(txn *store.Txn, account common.AccountId) (*Account, error) {
	return store.NewCache[Account](txn).Get(GetAccountKey(account))
}

func (p *FungibleToken) IsRegistered(txn *store.Txn, account common.AccountId) (bool, error) {
	acct, err := p.getAccount(txn, account)
	if err != nil {
		return false, err
	}
	return acct != nil, nil
}

func (p *FungibleToken) Register(txn *store.Txn, account common.AccountId) error {
	if err := account.Validate(); err != nil {
		return err
	}
	ok, err := p.IsRegistered(txn, account)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrapf(common.ErrInvalidArgument, "account %s is already registered", account)
	}
	return store.NewCache[Account](txn).Set(GetAccountKey(account), &Account{})
}

// BalanceOf returns zero for unregistered accounts.
func (p *FungibleToken) BalanceOf(txn *store.Txn, account common.AccountId) (uint128.Uint128, error) {
	acct, err := p.getAccount(txn, account)
	if err != nil || acct == nil {
		return uint128.Zero, err
	}
	return acct.Balance, nil
}

func (p *FungibleToken) TotalSupply(txn *store.Txn) (uint128.Uint128, error) {
	var s Supply
	err := txn.Get([]byte(DB_KEY_SUPPLY), &s)
	if err != nil {
		if errors.Is(err, common.ErrKeyNotFound) {
			return uint128.Zero, nil
		}
		return uint128.Zero, err
	}
	return s.Total, nil
}

func (p *FungibleToken) setTotalSupply(txn *store.Txn, total uint128.Uint128) error {
	return txn.Put([]byte(DB_KEY_SUPPLY), &Supply{Total: total})
}

func (p *FungibleToken) mustAccount(txn *store.Txn, account common.AccountId) (*Account, error) {
	acct, err := p.getAccount(txn, account)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.Wrapf(common.ErrAccountNotRegistered, "account %s", account)
	}
	return acct, nil
}

// Deposit credits a registered account and grows the total supply.
func (p *FungibleToken) Deposit(txn *store.Txn, account common.AccountId, amount uint128.Uint128) error {
	acct, err := p.mustAccount(txn, account)
	if err != nil {
		return err
	}
	balance, ok := common.CheckedAdd(acct.Balance, amount)
	if !ok {
		return errors.Wrapf(common.ErrArithmeticOverflow, "balance of %s", account)
	}
	supply, err := p.TotalSupply(txn)
	if err != nil {
		return err
	}
	supply, ok = common.CheckedAdd(supply, amount)
	if !ok {
		return errors.Wrap(common.ErrArithmeticOverflow, "total supply")
	}
	acct.Balance = balance
	if err := store.NewCache[Account](txn).Set(GetAccountKey(account), acct); err != nil {
		return err
	}
	return p.setTotalSupply(txn, supply)
}

// Withdraw debits a registered account and shrinks the total supply.
func (p *FungibleToken) Withdraw(txn *store.Txn, account common.AccountId, amount uint128.Uint128) error {
	acct, err := p.mustAccount(txn, account)
	if err != nil {
		return err
	}
	balance, ok := common.CheckedSub(acct.Balance, amount)
	if !ok {
		return errors.Wrapf(common.ErrInsufficientBalance, "%s holds %s, requested %s",
			account, acct.Balance, amount)
	}
	supply, err := p.TotalSupply(txn)
	if err != nil {
		return err
	}
	supply, ok = common.CheckedSub(supply, amount)
	if !ok {
		return errors.Wrap(common.ErrArithmeticOverflow, "total supply underflow")
	}
	acct.Balance = balance
	if err := store.NewCache[Account](txn).Set(GetAccountKey(account), acct); err != nil {
		return err
	}
	return p.setTotalSupply(txn, supply)
}

// Transfer moves amount between two registered accounts. Total supply is
// unchanged.
func (p *FungibleToken) Transfer(txn *store.Txn, from, to common.AccountId, amount uint128.Uint128, memo string) error {
	if from == to {
		return errors.Wrap(common.ErrInvalidArgument, "sender and receiver must differ")
	}
	if amount.IsZero() {
		return errors.Wrap(common.ErrInvalidArgument, "transfer amount must be positive")
	}
	if _, err := p.mustAccount(txn, to); err != nil {
		return err
	}
	if err := p.Withdraw(txn, from, amount); err != nil {
		return err
	}
	if err := p.Deposit(txn, to, amount); err != nil {
		return err
	}
	p.logger.Infof("Transfer %s from %s to %s", amount, from, to)
	if memo != "" {
		p.logger.Infof("Memo: %s", memo)
	}
	return nil
}

func (p *FungibleToken) StorageBalanceBounds() StorageBalanceBounds {
	bound := common.NewU128(p.minStorageBalance)
	return StorageBalanceBounds{Min: bound, Max: &bound}
}

// StorageBalanceOf returns nil for unregistered accounts.
func (p *FungibleToken) StorageBalanceOf(txn *store.Txn, account common.AccountId) (*StorageBalance, error) {
	ok, err := p.IsRegistered(txn, account)
	if err != nil || !ok {
		return nil, err
	}
	return &StorageBalance{
		Total:     common.NewU128(p.minStorageBalance),
		Available: common.NewU128(uint128.Zero),
	}, nil
}

// StorageDeposit registers account when attached covers the minimum storage
// balance. It returns the storage balance and the part of attached that is
// refunded: everything above the minimum, or all of it when the account was
// already registered.
func (p *FungibleToken) StorageDeposit(txn *store.Txn, account common.AccountId, attached uint128.Uint128) (*StorageBalance, uint128.Uint128, error) {
	ok, err := p.IsRegistered(txn, account)
	if err != nil {
		return nil, uint128.Zero, err
	}
	if ok {
		p.logger.Infof("The account %s is already registered, refunding the deposit", account)
		bal, err := p.StorageBalanceOf(txn, account)
		return bal, attached, err
	}
	if attached.Cmp(p.minStorageBalance) < 0 {
		return nil, uint128.Zero, errors.Wrapf(common.ErrInsufficientDeposit,
			"attached %s is less than the minimum storage balance %s", attached, p.minStorageBalance)
	}
	if err := p.Register(txn, account); err != nil {
		return nil, uint128.Zero, err
	}
	bal, err := p.StorageBalanceOf(txn, account)
	return bal, attached.Sub(p.minStorageBalance), err
}

func (p *FungibleToken) Metadata(txn *store.Txn) (*FungibleTokenMetadata, error) {
	var m FungibleTokenMetadata
	if err := txn.Get([]byte(DB_KEY_METADATA), &m); err != nil {
		if errors.Is(err, common.ErrKeyNotFound) {
			return nil, errors.Wrap(common.ErrNotInitialized, "token metadata")
		}
		return nil, err
	}
	return &m, nil
}

func (p *FungibleToken) SetMetadata(txn *store.Txn, m *FungibleTokenMetadata) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return txn.Put([]byte(DB_KEY_METADATA), m)
}
