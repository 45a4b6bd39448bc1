package db

import (
	"bytes"

	"github.com/sat20-labs/emission/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	path string
	db   *leveldb.DB
}

func NewLevelDB(path string, cacheMB int) (common.KVDB, error) {
	if path == "" {
		path = "./data/db"
	}
	if cacheMB <= 0 {
		cacheMB = DEFAULT_CACHE_MB
	}
	o := &opt.Options{
		BlockCacheCapacity: cacheMB * opt.MiB,
		NoSync:             false,
	}
	db, err := leveldb.OpenFile(path, o)
	if err != nil {
		return nil, err
	}
	return &levelDB{path: path, db: db}, nil
}

// NewLevelMemDB opens a goleveldb instance backed by memory storage.
func NewLevelMemDB() (common.KVDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

func (p *levelDB) Read(key []byte) ([]byte, error) {
	val, err := p.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	return append([]byte{}, val...), nil
}

func (p *levelDB) Write(key, value []byte) error {
	return p.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

func (p *levelDB) Delete(key []byte) error {
	return p.db.Delete(key, &opt.WriteOptions{Sync: true})
}

func (p *levelDB) Close() error {
	return p.db.Close()
}

func (p *levelDB) iterForward(prefix, start []byte, r func(k, v []byte) error) error {
	var rng *util.Range
	if len(prefix) > 0 {
		rng = util.BytesPrefix(prefix)
	}
	it := p.db.NewIterator(rng, nil)
	defer it.Release()

	var ok bool
	if len(start) > 0 {
		ok = it.Seek(start)
	} else {
		ok = it.First()
	}
	for ; ok; ok = it.Next() {
		k := it.Key()
		if len(prefix) > 0 && !bytes.HasPrefix(k, prefix) {
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
	}
	return it.Error()
}

func (p *levelDB) iterBackward(prefix, start []byte, r func(k, v []byte) error) error {
	var rng *util.Range
	if len(prefix) > 0 {
		rng = util.BytesPrefix(prefix)
	}
	it := p.db.NewIterator(rng, nil)
	defer it.Release()

	var ok bool
	if len(start) > 0 {
		ok = it.Seek(start)
		switch {
		case !ok:
			ok = it.Last()
		case bytes.Compare(it.Key(), start) > 0:
			ok = it.Prev()
		}
	} else {
		ok = it.Last()
	}
	for ; ok; ok = it.Prev() {
		k := it.Key()
		if len(prefix) > 0 && !bytes.HasPrefix(k, prefix) {
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
	}
	return it.Error()
}

func (p *levelDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	if reverse {
		return p.iterBackward(prefix, nil, r)
	}
	return p.iterForward(prefix, nil, r)
}

func (p *levelDB) BatchReadV2(prefix, seekKey []byte, reverse bool, r func(k, v []byte) error) error {
	if reverse {
		return p.iterBackward(prefix, seekKey, r)
	}
	return p.iterForward(prefix, seekKey, r)
}

type levelWriteBatch struct {
	db     *leveldb.DB
	batch  *leveldb.Batch
	closed bool
}

func (p *levelWriteBatch) Put(key, value []byte) error {
	if p.closed {
		return errWriteBatchClosed
	}
	p.batch.Put(key, value)
	return nil
}

func (p *levelWriteBatch) Delete(key []byte) error {
	if p.closed {
		return errWriteBatchClosed
	}
	p.batch.Delete(key)
	return nil
}

func (p *levelWriteBatch) Flush() error {
	if p.closed {
		return errWriteBatchClosed
	}
	return p.db.Write(p.batch, &opt.WriteOptions{Sync: true})
}

func (p *levelWriteBatch) Close() {
	p.closed = true
	p.batch = nil
}

func (p *levelDB) NewWriteBatch() common.WriteBatch {
	return &levelWriteBatch{db: p.db, batch: new(leveldb.Batch)}
}
