package store

import (
	"errors"
	"sort"

	"github.com/sat20-labs/emission/common"
	"github.com/sat20-labs/emission/db"
)

type ActionType int

const (
	INIT ActionType = 0
	PUT  ActionType = 1
	DEL  ActionType = 2
)

type CacheLog struct {
	Val       []byte
	Type      ActionType
	ExistInDb bool
}

var ErrTxnClosed = errors.New("transaction already closed")

// Txn journals every read and write of one call. Reads fall through to the
// database once and are cached, writes stay in the journal until Commit
// flushes them as a single write batch. Discard drops the journal.
type Txn struct {
	kv       common.KVDB
	logs     map[string]*CacheLog
	onCommit []func()
	closed   bool
}

func NewTxn(kv common.KVDB) *Txn {
	return &Txn{
		kv:   kv,
		logs: make(map[string]*CacheLog),
	}
}

func (t *Txn) GetRaw(key []byte) ([]byte, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}
	keyStr := string(key)
	if log := t.logs[keyStr]; log != nil {
		if log.Type == DEL || log.Val == nil {
			return nil, common.ErrKeyNotFound
		}
		return log.Val, nil
	}

	raw, err := t.kv.Read(key)
	if err != nil {
		if errors.Is(err, common.ErrKeyNotFound) {
			t.logs[keyStr] = &CacheLog{Type: INIT}
		}
		return nil, err
	}
	t.logs[keyStr] = &CacheLog{Val: raw, Type: INIT, ExistInDb: true}
	return raw, nil
}

func (t *Txn) PutRaw(key, val []byte) error {
	if t.closed {
		return ErrTxnClosed
	}
	keyStr := string(key)
	log := t.logs[keyStr]
	if log == nil {
		log = &CacheLog{}
		t.logs[keyStr] = log
	}
	log.Val = append([]byte{}, val...)
	log.Type = PUT
	return nil
}

func (t *Txn) Delete(key []byte) error {
	if t.closed {
		return ErrTxnClosed
	}
	keyStr := string(key)
	log := t.logs[keyStr]
	if log == nil {
		// unknown to the journal, assume it may exist on disk
		log = &CacheLog{ExistInDb: true}
		t.logs[keyStr] = log
	}
	log.Val = nil
	log.Type = DEL
	return nil
}

// Has reports whether key holds a value as seen by this transaction.
func (t *Txn) Has(key []byte) (bool, error) {
	_, err := t.GetRaw(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, common.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}

func (t *Txn) Get(key []byte, v any) error {
	raw, err := t.GetRaw(key)
	if err != nil {
		return err
	}
	return db.DecodeBytes(raw, v)
}

func (t *Txn) Put(key []byte, v any) error {
	raw, err := db.EncodeBytes(v)
	if err != nil {
		return err
	}
	return t.PutRaw(key, raw)
}

// OnCommit registers fn to run after a successful Commit. Nothing runs on
// Discard.
func (t *Txn) OnCommit(fn func()) {
	t.onCommit = append(t.onCommit, fn)
}

// Dirty returns the number of pending mutations.
func (t *Txn) Dirty() int {
	n := 0
	for _, log := range t.logs {
		if log.Type == PUT || (log.Type == DEL && log.ExistInDb) {
			n++
		}
	}
	return n
}

func (t *Txn) Commit() error {
	hooks, err := t.CommitDeferred()
	if err != nil {
		return err
	}
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// CommitDeferred writes the journal like Commit but hands the commit hooks
// back to the caller instead of running them.
func (t *Txn) CommitDeferred() ([]func(), error) {
	if t.closed {
		return nil, ErrTxnClosed
	}
	t.closed = true

	keys := make([]string, 0, len(t.logs))
	for key, log := range t.logs {
		if log.Type == PUT || (log.Type == DEL && log.ExistInDb) {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		wb := t.kv.NewWriteBatch()
		defer wb.Close()
		for _, key := range keys {
			log := t.logs[key]
			var err error
			if log.Type == PUT {
				err = wb.Put([]byte(key), log.Val)
			} else {
				err = wb.Delete([]byte(key))
			}
			if err != nil {
				return nil, err
			}
		}
		if err := wb.Flush(); err != nil {
			common.Log.Errorf("Txn.Commit-> flush %d keys failed: %v", len(keys), err)
			return nil, err
		}
	}

	hooks := t.onCommit
	t.logs = nil
	t.onCommit = nil
	return hooks, nil
}

func (t *Txn) Discard() {
	if t.closed {
		return
	}
	t.closed = true
	t.logs = nil
	t.onCommit = nil
}

// Scan iterates committed records under prefix. Journaled writes of the
// current transaction are not visible to it.
func (t *Txn) Scan(prefix, seek []byte, reverse bool, fn func(k, v []byte) error) error {
	if t.closed {
		return ErrTxnClosed
	}
	return t.kv.BatchReadV2(prefix, seek, reverse, fn)
}
