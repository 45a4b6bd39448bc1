package store

// Cache is a typed view over a Txn for records of type T.
type Cache[T any] struct {
	txn *Txn
}

func NewCache[T any](txn *Txn) *Cache[T] { return &Cache[T]{txn: txn} }

// Get returns nil when the key holds no record.
func (s *Cache[T]) Get(key []byte) (*T, error) {
	ok, err := s.txn.Has(key)
	if err != nil || !ok {
		return nil, err
	}
	var out T
	if err := s.txn.Get(key, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Cache[T]) Set(key []byte, v *T) error {
	return s.txn.Put(key, v)
}

func (s *Cache[T]) Delete(key []byte) error {
	return s.txn.Delete(key)
}
