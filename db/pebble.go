package db

import (
	"bytes"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/sat20-labs/emission/common"
)

type pebbleDB struct {
	path string
	db   *pebble.DB
}

// State records are tiny and read by point lookups: small blocks, a bloom
// filter per table, and a modest cache.
func pebbleOptions(cacheMB int) *pebble.Options {
	if cacheMB <= 0 {
		cacheMB = DEFAULT_CACHE_MB
	}
	cache := pebble.NewCache(int64(cacheMB) << 20)

	return &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: 1000,

		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,

		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 12,

		Levels: func() []pebble.LevelOptions {
			lvls := make([]pebble.LevelOptions, 7)
			for i := range lvls {
				lvls[i].TargetFileSize = 8 << 20
				lvls[i].BlockSize = 4 << 10
				lvls[i].FilterPolicy = bloom.FilterPolicy(10)
				lvls[i].FilterType = pebble.TableFilter
			}
			return lvls
		}(),
	}
}

func NewPebbleDB(path string, cacheMB int) (common.KVDB, error) {
	if path == "" {
		path = "./data/db"
	}
	o := pebbleOptions(cacheMB)
	defer o.Cache.Unref()
	db, err := pebble.Open(path, o)
	if err != nil {
		return nil, err
	}
	return &pebbleDB{path: path, db: db}, nil
}

// NewPebbleMemDB opens a pebble instance on an in-memory filesystem.
func NewPebbleMemDB() (common.KVDB, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}
	return &pebbleDB{db: db}, nil
}

func (p *pebbleDB) Read(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte{}, val...), nil
}

func (p *pebbleDB) Write(key, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, pebble.Sync)
}

func (p *pebbleDB) Close() error {
	return p.db.Close()
}

// nextPrefix returns the smallest key greater than every key with the given
// prefix, usable as an exclusive upper bound. nil means unbounded.
func nextPrefix(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	out := append([]byte{}, prefix...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}

func (p *pebbleDB) iter(prefix, start []byte, reverse bool, r func(k, v []byte) error) error {
	var lower, upper []byte
	if len(prefix) > 0 {
		lower = prefix
		upper = nextPrefix(prefix)
	}

	it, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return err
	}
	defer it.Close()

	if reverse {
		var ok bool
		if len(start) > 0 {
			// start is inclusive in both directions
			ok = it.SeekLT(append(append([]byte{}, start...), 0))
		} else {
			ok = it.Last()
		}
		for ; ok; ok = it.Prev() {
			k := it.Key()
			if len(prefix) > 0 && upper == nil && !bytes.HasPrefix(k, prefix) {
				break
			}
			if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
				return err
			}
		}
		return it.Error()
	}

	var ok bool
	if len(start) > 0 {
		ok = it.SeekGE(start)
	} else {
		ok = it.First()
	}
	for ; ok; ok = it.Next() {
		k := it.Key()
		if len(prefix) > 0 && upper == nil && !bytes.HasPrefix(k, prefix) {
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
	}
	return it.Error()
}

func (p *pebbleDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	return p.iter(prefix, nil, reverse, r)
}

func (p *pebbleDB) BatchReadV2(prefix, seekKey []byte, reverse bool, r func(k, v []byte) error) error {
	return p.iter(prefix, seekKey, reverse, r)
}

type pebbleWriteBatch struct {
	batch  *pebble.Batch
	closed bool
}

func (p *pebbleWriteBatch) Put(key, value []byte) error {
	if p.closed {
		return errWriteBatchClosed
	}
	return p.batch.Set(key, value, nil)
}

func (p *pebbleWriteBatch) Delete(key []byte) error {
	if p.closed {
		return errWriteBatchClosed
	}
	return p.batch.Delete(key, nil)
}

// Flush commits every buffered mutation as one atomic, synced write.
func (p *pebbleWriteBatch) Flush() error {
	if p.closed {
		return errWriteBatchClosed
	}
	return p.batch.Commit(pebble.Sync)
}

func (p *pebbleWriteBatch) Close() {
	if p.closed {
		return
	}
	p.closed = true
	_ = p.batch.Close()
}

func (p *pebbleDB) NewWriteBatch() common.WriteBatch {
	return &pebbleWriteBatch{batch: p.db.NewBatch()}
}
