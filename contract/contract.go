package contract

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/ledger"
	"github.com/sat20-labs/emission/store"
	"github.com/sirupsen/logrus"
	"lukechampine.com/uint128"
)

// Env describes the call being executed: who signed it, how much value is
// attached and the block time in nanoseconds.
type Env struct {
	Caller          common.AccountId
	AttachedDeposit uint128.Uint128
	Timestamp       uint64
}

// Ledger is the part of the fungible token the emission engine drives.
type Ledger interface {
	Register(txn *store.Txn, account common.AccountId) error
	IsRegistered(txn *store.Txn, account common.AccountId) (bool, error)
	Deposit(txn *store.Txn, account common.AccountId, amount uint128.Uint128) error
	Withdraw(txn *store.Txn, account common.AccountId, amount uint128.Uint128) error
	BalanceOf(txn *store.Txn, account common.AccountId) (uint128.Uint128, error)
	Transfer(txn *store.Txn, from, to common.AccountId, amount uint128.Uint128, memo string) error
	MinStorageBalance() uint128.Uint128
}

// TokenLedger adds the token views and storage management exposed next to
// the engine.
type TokenLedger interface {
	Ledger
	TotalSupply(txn *store.Txn) (uint128.Uint128, error)
	Metadata(txn *store.Txn) (*ledger.FungibleTokenMetadata, error)
	SetMetadata(txn *store.Txn, m *ledger.FungibleTokenMetadata) error
	StorageBalanceOf(txn *store.Txn, account common.AccountId) (*ledger.StorageBalance, error)
	StorageBalanceBounds() ledger.StorageBalanceBounds
	StorageDeposit(txn *store.Txn, account common.AccountId, attached uint128.Uint128) (*ledger.StorageBalance, uint128.Uint128, error)
}

// Params are the economic constants of the engine.
type Params struct {
	InitialEmissions  uint64
	DecayFactor       float64
	MintScaling       uint64
	PeriodSeconds     uint64
	RafflePoolAmount  uint128.Uint128
	TappingPoolAmount uint128.Uint128
}

func DefaultParams() Params {
	return Params{
		InitialEmissions:  common.DEFAULT_INITIAL_EMISSIONS,
		DecayFactor:       common.DEFAULT_DECAY_FACTOR,
		MintScaling:       common.MINT_SCALING_FACTOR,
		PeriodSeconds:     common.SECONDS_IN_A_MONTH,
		RafflePoolAmount:  common.DEFAULT_RAFFLE_POOL_AMOUNT,
		TappingPoolAmount: common.DEFAULT_TAPPING_POOL_AMOUNT,
	}
}

func (p *Params) Validate() error {
	if !(p.DecayFactor > 0 && p.DecayFactor < 1) {
		return errors.Wrapf(common.ErrInvalidArgument, "decay factor %v must be in (0,1)", p.DecayFactor)
	}
	if p.MintScaling == 0 {
		return errors.Wrap(common.ErrInvalidArgument, "mint scaling must be positive")
	}
	if p.PeriodSeconds == 0 {
		return errors.Wrap(common.ErrInvalidArgument, "period must be positive")
	}
	return nil
}

// Contract is the emission and reward pool engine. Calls are serialized:
// each runs in its own transaction that is committed as one write batch or
// discarded on the first error.
type Contract struct {
	mu     sync.RWMutex
	kv     common.KVDB
	ledger TokenLedger
	params Params
	events *EventJournal
	logger *logrus.Entry
}

func NewContract(kv common.KVDB, l TokenLedger, params Params) (*Contract, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Contract{
		kv:     kv,
		ledger: l,
		params: params,
		events: NewEventJournal(),
		logger: common.GetLoggerEntry("contract"),
	}, nil
}

func (p *Contract) Params() Params {
	return p.params
}

func (p *Contract) Events() *EventJournal {
	return p.events
}

func (p *Contract) mutate(env *Env, method string, fn func(txn *store.Txn) error) error {
	if err := env.Caller.Validate(); err != nil {
		return errors.Wrapf(common.ErrUnauthorized, "caller: %v", err)
	}

	hooks, err := p.commitLocked(env, method, fn)
	if err != nil {
		return err
	}
	// hooks may call back into views
	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (p *Contract) commitLocked(env *Env, method string, fn func(txn *store.Txn) error) ([]func(), error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	txn := store.NewTxn(p.kv)
	if err := fn(txn); err != nil {
		txn.Discard()
		p.logger.Warnf("%s by %s rejected: %v", method, env.Caller, err)
		return nil, err
	}
	hooks, err := txn.CommitDeferred()
	if err != nil {
		p.logger.Errorf("%s by %s commit failed: %v", method, env.Caller, err)
		return nil, err
	}
	return hooks, nil
}

func (p *Contract) view(fn func(txn *store.Txn) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	txn := store.NewTxn(p.kv)
	defer txn.Discard()
	return fn(txn)
}

// IsInitialized reports whether NewDefaultMeta has run.
func (p *Contract) IsInitialized() (bool, error) {
	var ok bool
	err := p.view(func(txn *store.Txn) error {
		var err error
		ok, err = txn.Has([]byte(DB_KEY_OWNERSHIP))
		return err
	})
	return ok, err
}

// NewDefaultMeta initializes the token with the default metadata, makes the
// caller the owner, seeds the emission schedule and both pools, and deposits
// totalSupply to the owner.
func (p *Contract) NewDefaultMeta(env *Env, totalSupply uint128.Uint128) error {
	return p.New(env, totalSupply, ledger.DefaultMetadata())
}

func (p *Contract) New(env *Env, totalSupply uint128.Uint128, metadata *ledger.FungibleTokenMetadata) error {
	return p.mutate(env, "new", func(txn *store.Txn) error {
		exists, err := txn.Has([]byte(DB_KEY_OWNERSHIP))
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrap(common.ErrAlreadyInitialized, "already initialized")
		}

		if err := p.ledger.SetMetadata(txn, metadata); err != nil {
			return err
		}
		o := newOwnership(env.Caller)
		if err := saveOwnership(txn, o); err != nil {
			return err
		}
		if err := p.seedOwnerState(txn, o.Owner, env.Timestamp); err != nil {
			return err
		}
		if err := p.ledger.Register(txn, o.Owner); err != nil {
			return err
		}
		if !totalSupply.IsZero() {
			if err := p.ledger.Deposit(txn, o.Owner, totalSupply); err != nil {
				return err
			}
			if err := p.emit(txn, env, NewFtMint(o.Owner, totalSupply, "")); err != nil {
				return err
			}
		}
		if err := txn.Put([]byte(DB_KEY_STATE_VERSION), common.STATE_DB_VERSION); err != nil {
			return err
		}
		p.logger.Infof("Initialized %s for owner %s with total supply %s", metadata.Symbol, o.Owner, totalSupply)
		return nil
	})
}

// StateVersion returns the schema version written at initialization.
func (p *Contract) StateVersion() (string, error) {
	var v string
	err := p.view(func(txn *store.Txn) error {
		err := txn.Get([]byte(DB_KEY_STATE_VERSION), &v)
		if errors.Is(err, common.ErrKeyNotFound) {
			return errors.Wrap(common.ErrNotInitialized, "state version")
		}
		return err
	})
	return v, err
}
