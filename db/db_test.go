package db

import (
	"fmt"
	"testing"

	"github.com/sat20-labs/emission/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forEachBackend(t *testing.T, fn func(t *testing.T, kv common.KVDB)) {
	for _, typ := range []string{DB_TYPE_PEBBLE, DB_TYPE_LEVELDB} {
		t.Run(typ, func(t *testing.T) {
			kv, err := NewMemKVDB(typ)
			require.NoError(t, err)
			defer kv.Close()
			fn(t, kv)
		})
	}
}

func TestReadWriteDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		_, err := kv.Read([]byte("missing"))
		assert.ErrorIs(t, err, common.ErrKeyNotFound)

		require.NoError(t, kv.Write([]byte("a"), []byte("1")))
		v, err := kv.Read([]byte("a"))
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)

		require.NoError(t, kv.Delete([]byte("a")))
		_, err = kv.Read([]byte("a"))
		assert.ErrorIs(t, err, common.ErrKeyNotFound)
	})
}

func TestWriteBatchIsAllOrNothing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		require.NoError(t, kv.Write([]byte("gone"), []byte("x")))

		wb := kv.NewWriteBatch()
		require.NoError(t, wb.Put([]byte("k1"), []byte("v1")))
		require.NoError(t, wb.Put([]byte("k2"), []byte("v2")))
		require.NoError(t, wb.Delete([]byte("gone")))

		// nothing visible before flush
		_, err := kv.Read([]byte("k1"))
		assert.ErrorIs(t, err, common.ErrKeyNotFound)

		require.NoError(t, wb.Flush())
		wb.Close()

		v, err := kv.Read([]byte("k2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
		_, err = kv.Read([]byte("gone"))
		assert.ErrorIs(t, err, common.ErrKeyNotFound)

		assert.Error(t, wb.Put([]byte("k3"), nil))
	})
}

func TestDiscardedBatchLeavesNoTrace(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		wb := kv.NewWriteBatch()
		require.NoError(t, wb.Put([]byte("k"), []byte("v")))
		wb.Close()

		_, err := kv.Read([]byte("k"))
		assert.ErrorIs(t, err, common.ErrKeyNotFound)
	})
}

func TestBatchReadPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		for i := 0; i < 5; i++ {
			require.NoError(t, kv.Write([]byte(fmt.Sprintf("e-%02d", i)), []byte{byte(i)}))
		}
		require.NoError(t, kv.Write([]byte("f-00"), []byte{9}))
		require.NoError(t, kv.Write([]byte("d-99"), []byte{9}))

		var keys []string
		err := kv.BatchRead([]byte("e-"), false, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e-00", "e-01", "e-02", "e-03", "e-04"}, keys)

		keys = keys[:0]
		err = kv.BatchRead([]byte("e-"), true, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e-04", "e-03", "e-02", "e-01", "e-00"}, keys)
	})
}

func TestBatchReadV2Seek(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		for i := 0; i < 5; i++ {
			require.NoError(t, kv.Write([]byte(fmt.Sprintf("e-%02d", i)), []byte{byte(i)}))
		}

		var keys []string
		err := kv.BatchReadV2([]byte("e-"), []byte("e-02"), false, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e-02", "e-03", "e-04"}, keys)

		keys = keys[:0]
		err = kv.BatchReadV2([]byte("e-"), []byte("e-02"), true, func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e-02", "e-01", "e-00"}, keys)

		stop := fmt.Errorf("stop")
		n := 0
		err = kv.BatchRead([]byte("e-"), false, func(k, v []byte) error {
			n++
			if n == 2 {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 2, n)
	})
}

func TestNextPrefix(t *testing.T) {
	assert.Equal(t, []byte("b"), nextPrefix([]byte("a")))
	assert.Equal(t, []byte{0x01}, nextPrefix([]byte{0x00, 0xFF}))
	assert.Nil(t, nextPrefix([]byte{0xFF, 0xFF}))
	assert.Nil(t, nextPrefix(nil))
}

func TestUnsupportedType(t *testing.T) {
	_, err := NewKVDB("badger", t.TempDir(), 0)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = OpenKVDB(&Options{Type: "badger", Path: t.TempDir(), Attempts: 3})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestOpenKVDBOnDisk(t *testing.T) {
	for _, typ := range []string{DB_TYPE_PEBBLE, DB_TYPE_LEVELDB} {
		dir := t.TempDir()
		kv, err := OpenKVDB(&Options{Type: typ, Path: dir, CacheMB: 8})
		require.NoError(t, err, typ)
		require.NoError(t, kv.Write([]byte("k"), []byte("v")))
		require.NoError(t, kv.Close())

		kv, err = OpenKVDB(&Options{Type: typ, Path: dir, CacheMB: 8})
		require.NoError(t, err, typ)
		v, err := kv.Read([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
		require.NoError(t, kv.Close())
	}
}

type sample struct {
	Name  string
	Count uint32
}

func TestCodecRoundTripThroughDB(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv common.KVDB) {
		in := sample{Name: "alice.near", Count: 7}
		require.NoError(t, SetDB([]byte("s"), &in, kv))

		var out sample
		require.NoError(t, GetDB([]byte("s"), &out, kv))
		assert.Equal(t, in, out)

		a, err := EncodeBytes(&in)
		require.NoError(t, err)
		b, err := EncodeBytes(&out)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
