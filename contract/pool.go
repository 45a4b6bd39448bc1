package contract

import (
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/store"
	"lukechampine.com/uint128"
)

// RafflePool is the singleton loot raffle pool. TotalAmount only grows.
type RafflePool struct {
	PoolId      uint32
	Amount      uint128.Uint128
	TotalAmount uint128.Uint128
}

// TappingPool is the singleton global tapping pool, reset on every mint.
type TappingPool struct {
	PoolId uint32
	Amount uint128.Uint128
}

func loadRafflePool(txn *store.Txn) (*RafflePool, error) {
	pool, err := store.NewCache[RafflePool](txn).Get(GetPoolKey(common.POOL_ID_RAFFLE))
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, errors.Wrap(common.ErrNotInitialized, "loot raffle pool not found")
	}
	return pool, nil
}

func saveRafflePool(txn *store.Txn, pool *RafflePool) error {
	return store.NewCache[RafflePool](txn).Set(GetPoolKey(common.POOL_ID_RAFFLE), pool)
}

func loadTappingPool(txn *store.Txn) (*TappingPool, error) {
	pool, err := store.NewCache[TappingPool](txn).Get(GetPoolKey(common.POOL_ID_TAPPING))
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, errors.Wrap(common.ErrNotInitialized, "global tapping pool not found")
	}
	return pool, nil
}

func saveTappingPool(txn *store.Txn, pool *TappingPool) error {
	return store.NewCache[TappingPool](txn).Set(GetPoolKey(common.POOL_ID_TAPPING), pool)
}

func debit(name string, available *uint128.Uint128, amount uint128.Uint128) error {
	left, ok := common.CheckedSub(*available, amount)
	if !ok {
		return errors.Wrapf(common.ErrInsufficientPoolBalance,
			"insufficient funds in %s. Available: %s, Requested: %s", name, *available, amount)
	}
	*available = left
	return nil
}

// debitPool takes amount out of the pool selected by poolId.
func checkPoolId(poolId uint32) error {
	if poolId != common.POOL_ID_RAFFLE && poolId != common.POOL_ID_TAPPING {
		return errors.Wrapf(common.ErrInvalidPool, "pool id %d", poolId)
	}
	return nil
}

func debitPool(txn *store.Txn, poolId uint32, amount uint128.Uint128) error {
	switch poolId {
	case common.POOL_ID_RAFFLE:
		pool, err := loadRafflePool(txn)
		if err != nil {
			return err
		}
		if err := debit("Loot Raffle Pool", &pool.Amount, amount); err != nil {
			return err
		}
		return saveRafflePool(txn, pool)

	case common.POOL_ID_TAPPING:
		pool, err := loadTappingPool(txn)
		if err != nil {
			return err
		}
		if err := debit("Global Tapping Pool", &pool.Amount, amount); err != nil {
			return err
		}
		return saveTappingPool(txn, pool)
	}
	return errors.Wrapf(common.ErrInvalidPool, "pool id %d", poolId)
}

func (p *Contract) RafflePool() (*RafflePool, error) {
	var pool *RafflePool
	err := p.view(func(txn *store.Txn) error {
		var err error
		pool, err = loadRafflePool(txn)
		return err
	})
	return pool, err
}

func (p *Contract) TappingPool() (*TappingPool, error) {
	var pool *TappingPool
	err := p.view(func(txn *store.Txn) error {
		var err error
		pool, err = loadTappingPool(txn)
		return err
	})
	return pool, err
}
