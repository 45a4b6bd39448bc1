package contract

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

type TransferState uint8

const (
	STATE_STABLE           TransferState = 0
	STATE_TRANSFER_PENDING TransferState = 1
)

func (s TransferState) String() string {
	switch s {
	case STATE_STABLE:
		return "stable"
	case STATE_TRANSFER_PENDING:
		return "transfer_pending"
	}
	return "unknown"
}

// Ownership is the administrative owner plus an optional pending transfer.
// Candidate is set only in STATE_TRANSFER_PENDING and never equals Owner.
type Ownership struct {
	Owner     common.AccountId
	State     TransferState
	Candidate common.AccountId
}

func newOwnership(owner common.AccountId) *Ownership {
	return &Ownership{Owner: owner, State: STATE_STABLE}
}

func (o *Ownership) Pending() (common.AccountId, bool) {
	if o.State != STATE_TRANSFER_PENDING {
		return "", false
	}
	return o.Candidate, true
}

// propose enters (or re-enters) the pending state. Re-proposing replaces the
// previous candidate.
func (o *Ownership) propose(candidate common.AccountId) error {
	if candidate == o.Owner {
		return errors.Wrap(common.ErrInvalidArgument, "new owner cannot be the current owner")
	}
	o.State = STATE_TRANSFER_PENDING
	o.Candidate = candidate
	return nil
}

// accept promotes the candidate and returns to the stable state.
func (o *Ownership) accept() {
	o.Owner = o.Candidate
	o.Candidate = ""
	o.State = STATE_STABLE
}

type role int

const (
	roleAnyone role = iota
	roleOwner
	roleCandidate
)

type tokenRule int

const (
	tokenNone tokenRule = iota
	// exactly one unit attached
	tokenExact
	// at least one unit attached, the remainder funds storage
	tokenAtLeast
)

type capability struct {
	role  role
	token tokenRule
}

var (
	capOwner     = capability{role: roleOwner, token: tokenExact}
	capOwnerFund = capability{role: roleOwner, token: tokenAtLeast}
	capCandidate = capability{role: roleCandidate, token: tokenExact}
	capSigned    = capability{role: roleAnyone, token: tokenExact}
	capAnyone    = capability{role: roleAnyone, token: tokenNone}
)

func loadOwnership(txn *store.Txn) (*Ownership, error) {
	o, err := store.NewCache[Ownership](txn).Get([]byte(DB_KEY_OWNERSHIP))
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errors.Wrap(common.ErrNotInitialized, "ownership")
	}
	return o, nil
}

func saveOwnership(txn *store.Txn, o *Ownership) error {
	return store.NewCache[Ownership](txn).Set([]byte(DB_KEY_OWNERSHIP), o)
}

// authorize is the single gate of every entry point: it checks the caller's
// role against the ownership register, then the attached authentication
// token.
func authorize(txn *store.Txn, env *Env, c capability) (*Ownership, error) {
	o, err := loadOwnership(txn)
	if err != nil {
		return nil, err
	}

	switch c.role {
	case roleOwner:
		if env.Caller != o.Owner {
			return nil, errors.Wrapf(common.ErrUnauthorized, "caller %s is not the owner", env.Caller)
		}
	case roleCandidate:
		candidate, ok := o.Pending()
		if !ok {
			return nil, errors.Wrap(common.ErrNoPendingTransfer, "no ownership transfer initiated")
		}
		if env.Caller != candidate {
			return nil, errors.Wrapf(common.ErrUnauthorized, "caller %s is not the proposed owner", env.Caller)
		}
	}

	switch c.token {
	case tokenExact:
		if !env.AttachedDeposit.Equals(common.AUTH_TOKEN_AMOUNT) {
			return nil, errors.Wrapf(common.ErrUnauthorized, "requires attached deposit of exactly %s", common.AUTH_TOKEN_AMOUNT)
		}
	case tokenAtLeast:
		if env.AttachedDeposit.Cmp(common.AUTH_TOKEN_AMOUNT) < 0 {
			return nil, errors.Wrapf(common.ErrUnauthorized, "requires attached deposit of at least %s", common.AUTH_TOKEN_AMOUNT)
		}
	}
	return o, nil
}

func (p *Contract) InitiateOwnershipTransfer(env *Env, newOwner common.AccountId) error {
	if err := newOwner.Validate(); err != nil {
		return err
	}
	return p.mutate(env, "initiate_ownership_transfer", func(txn *store.Txn) error {
		o, err := authorize(txn, env, capOwner)
		if err != nil {
			return err
		}
		if err := o.propose(newOwner); err != nil {
			return err
		}
		if err := saveOwnership(txn, o); err != nil {
			return err
		}
		p.logger.Infof("Ownership transfer initiated to: %s", newOwner)
		return nil
	})
}

func (p *Contract) AcceptOwnership(env *Env) error {
	return p.mutate(env, "accept_ownership", func(txn *store.Txn) error {
		o, err := authorize(txn, env, capCandidate)
		if err != nil {
			return err
		}
		o.accept()
		if err := saveOwnership(txn, o); err != nil {
			return err
		}
		if err := p.seedOwnerState(txn, o.Owner, env.Timestamp); err != nil {
			return err
		}
		p.logger.Infof("Ownership successfully transferred to: %s", o.Owner)
		return nil
	})
}

// Owners returns the current owner and the proposed owner, empty when no
// transfer is pending.
func (p *Contract) Owners() (common.AccountId, common.AccountId, error) {
	var owner, candidate common.AccountId
	err := p.view(func(txn *store.Txn) error {
		o, err := loadOwnership(txn)
		if err != nil {
			return err
		}
		owner = o.Owner
		candidate, _ = o.Pending()
		return nil
	})
	return owner, candidate, err
}

// seedOwnerState creates the emissions account of owner and the reward
// pools when they do not exist yet.
func (p *Contract) seedOwnerState(txn *store.Txn, owner common.AccountId, now uint64) error {
	ec := store.NewCache[EmissionsAccount](txn)
	acct, err := ec.Get(GetEmissionsKey(owner))
	if err != nil {
		return err
	}
	if acct == nil {
		if err := ec.Set(GetEmissionsKey(owner), newEmissionsAccount(&p.params, now)); err != nil {
			return err
		}
		p.logger.Infof("Initialized emissions account for new owner: %s", owner)
	}

	raffle, err := loadRafflePool(txn)
	if err != nil && !errors.Is(err, common.ErrNotInitialized) {
		return err
	}
	if raffle == nil {
		if err := saveRafflePool(txn, &RafflePool{PoolId: common.POOL_ID_RAFFLE, Amount: p.params.RafflePoolAmount, TotalAmount: uint128.Zero}); err != nil {
			return err
		}
		p.logger.Infof("Initialized loot raffle pool for new owner: %s", owner)
	}

	tapping, err := loadTappingPool(txn)
	if err != nil && !errors.Is(err, common.ErrNotInitialized) {
		return err
	}
	if tapping == nil {
		if err := saveTappingPool(txn, &TappingPool{PoolId: common.POOL_ID_TAPPING, Amount: p.params.TappingPoolAmount}); err != nil {
			return err
		}
		p.logger.Infof("Initialized global tapping pool for new owner: %s", owner)
	}
	return nil
}
