package common

import "github.com/pkg/errors"

var (
	ErrKeyNotFound = errors.New("Key not found")
)

type WriteBatch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Flush() error
	Close()
}

// Every call on KVDB is a complete transaction. Multi-key atomic updates go
// through NewWriteBatch.
type KVDB interface {
	Read(key []byte) ([]byte, error)
	Write(key, value []byte) error
	Delete(key []byte) error
	Close() error

	NewWriteBatch() WriteBatch

	// ordered scans
	BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error
	BatchReadV2(prefix, seekKey []byte, reverse bool, r func(k, v []byte) error) error
}
