package ledger

import (
	"testing"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/db"
	"github.com/sat20-labs/emission/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func newTxn(t *testing.T) (*store.Txn, common.KVDB) {
	kv, err := db.NewMemKVDB(db.DB_TYPE_LEVELDB)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return store.NewTxn(kv), kv
}

func TestDepositWithdrawTracksSupply(t *testing.T) {
	txn, _ := newTxn(t)
	ft := NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE)

	err := ft.Deposit(txn, "alice.near", uint128.From64(10))
	assert.ErrorIs(t, err, common.ErrAccountNotRegistered)

	require.NoError(t, ft.Register(txn, "alice.near"))
	require.NoError(t, ft.Deposit(txn, "alice.near", uint128.From64(100)))
	require.NoError(t, ft.Withdraw(txn, "alice.near", uint128.From64(30)))

	bal, err := ft.BalanceOf(txn, "alice.near")
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(70), bal)

	supply, err := ft.TotalSupply(txn)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(70), supply)

	err = ft.Withdraw(txn, "alice.near", uint128.From64(71))
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)
}

func TestDepositOverflow(t *testing.T) {
	txn, _ := newTxn(t)
	ft := NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE)
	require.NoError(t, ft.Register(txn, "alice.near"))
	require.NoError(t, ft.Deposit(txn, "alice.near", uint128.Max))

	err := ft.Deposit(txn, "alice.near", uint128.From64(1))
	assert.ErrorIs(t, err, common.ErrArithmeticOverflow)
}

func TestRegister(t *testing.T) {
	txn, _ := newTxn(t)
	ft := NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE)

	ok, err := ft.IsRegistered(txn, "bob.near")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ft.Register(txn, "bob.near"))
	ok, err = ft.IsRegistered(txn, "bob.near")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, ft.Register(txn, "bob.near"), common.ErrInvalidArgument)
	assert.ErrorIs(t, ft.Register(txn, "Bad Name"), common.ErrInvalidArgument)

	bal, err := ft.BalanceOf(txn, "nobody.near")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestTransfer(t *testing.T) {
	txn, _ := newTxn(t)
	ft := NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE)
	require.NoError(t, ft.Register(txn, "alice.near"))
	require.NoError(t, ft.Register(txn, "bob.near"))
	require.NoError(t, ft.Deposit(txn, "alice.near", uint128.From64(50)))

	require.NoError(t, ft.Transfer(txn, "alice.near", "bob.near", uint128.From64(20), "hi"))

	a, _ := ft.BalanceOf(txn, "alice.near")
	b, _ := ft.BalanceOf(txn, "bob.near")
	assert.Equal(t, uint128.From64(30), a)
	assert.Equal(t, uint128.From64(20), b)
	supply, _ := ft.TotalSupply(txn)
	assert.Equal(t, uint128.From64(50), supply)

	assert.ErrorIs(t, ft.Transfer(txn, "alice.near", "alice.near", uint128.From64(1), ""), common.ErrInvalidArgument)
	assert.ErrorIs(t, ft.Transfer(txn, "alice.near", "bob.near", uint128.Zero, ""), common.ErrInvalidArgument)
	assert.ErrorIs(t, ft.Transfer(txn, "alice.near", "carol.near", uint128.From64(1), ""), common.ErrAccountNotRegistered)
	assert.ErrorIs(t, ft.Transfer(txn, "alice.near", "bob.near", uint128.From64(31), ""), common.ErrInsufficientBalance)
}

func TestStorageDeposit(t *testing.T) {
	txn, _ := newTxn(t)
	minBal := uint128.From64(1000)
	ft := NewFungibleToken(minBal)

	_, _, err := ft.StorageDeposit(txn, "carol.near", uint128.From64(999))
	assert.ErrorIs(t, err, common.ErrInsufficientDeposit)

	bal, refund, err := ft.StorageDeposit(txn, "carol.near", uint128.From64(1500))
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(500), refund)
	assert.Equal(t, minBal, bal.Total.Uint128)
	assert.True(t, bal.Available.IsZero())

	_, refund, err = ft.StorageDeposit(txn, "carol.near", uint128.From64(1000))
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(1000), refund)

	bounds := ft.StorageBalanceBounds()
	assert.Equal(t, minBal, bounds.Min.Uint128)
	require.NotNil(t, bounds.Max)
	assert.Equal(t, minBal, bounds.Max.Uint128)

	sb, err := ft.StorageBalanceOf(txn, "dave.near")
	require.NoError(t, err)
	assert.Nil(t, sb)
}

func TestMetadata(t *testing.T) {
	txn, kv := newTxn(t)
	ft := NewFungibleToken(common.DEFAULT_MIN_STORAGE_BALANCE)

	_, err := ft.Metadata(txn)
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	require.NoError(t, ft.SetMetadata(txn, DefaultMetadata()))
	require.NoError(t, txn.Commit())

	m, err := ft.Metadata(store.NewTxn(kv))
	require.NoError(t, err)
	assert.Equal(t, "PUSH", m.Symbol)
	assert.Equal(t, uint8(5), m.Decimals)
	require.NotNil(t, m.Icon)

	bad := DefaultMetadata()
	bad.Spec = "ft-2.0.0"
	assert.ErrorIs(t, ft.SetMetadata(store.NewTxn(kv), bad), common.ErrInvalidArgument)
}
