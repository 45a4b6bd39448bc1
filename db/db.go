package db

import (
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/sat20-labs/emission/common"
)

const (
	DB_TYPE_PEBBLE  = "pebble"
	DB_TYPE_LEVELDB = "leveldb"

	DEFAULT_CACHE_MB = 64
)

var errWriteBatchClosed = errors.New("write batch closed")

type Options struct {
	Type    string
	Path    string
	CacheMB int
	// open retries when another process still holds the lock
	Attempts uint
	Delay    time.Duration
}

func NewKVDB(typ, path string, cacheMB int) (common.KVDB, error) {
	switch typ {
	case "", DB_TYPE_PEBBLE:
		return NewPebbleDB(path, cacheMB)
	case DB_TYPE_LEVELDB:
		return NewLevelDB(path, cacheMB)
	}
	return nil, errors.Wrapf(common.ErrInvalidArgument, "unsupported db type %q", typ)
}

// OpenKVDB opens the configured backend, retrying while the directory lock
// is held by a process that is shutting down.
func OpenKVDB(opts *Options) (common.KVDB, error) {
	attempts := opts.Attempts
	if attempts == 0 {
		attempts = 5
	}
	delay := opts.Delay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var kv common.KVDB
	err := retry.Do(
		func() error {
			var err error
			kv, err = NewKVDB(opts.Type, opts.Path, opts.CacheMB)
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, common.ErrInvalidArgument)
		}),
		retry.OnRetry(func(n uint, err error) {
			common.Log.Warnf("open %s db %s failed (attempt %d): %v", opts.Type, opts.Path, n+1, err)
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "open db %s", opts.Path)
	}
	return kv, nil
}

// NewMemKVDB returns an in-memory instance of the given backend.
func NewMemKVDB(typ string) (common.KVDB, error) {
	switch typ {
	case "", DB_TYPE_PEBBLE:
		return NewPebbleMemDB()
	case DB_TYPE_LEVELDB:
		return NewLevelMemDB()
	}
	return nil, errors.Wrapf(common.ErrInvalidArgument, "unsupported db type %q", typ)
}
