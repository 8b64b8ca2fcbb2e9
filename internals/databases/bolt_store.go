// file: internals/databases/bolt_store.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("attendku_state")

type BoltStore struct {
	db *bbolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Driver() string { return "bolt" }

func (s *BoltStore) Get(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(stateBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, out)
	})
	if err != nil {
		return found, fmt.Errorf("bolt get %s: %w", key, err)
	}
	return found, nil
}

func (s *BoltStore) Put(ctx context.Context, key string, value any) error {
	return s.PutMany(ctx, map[string]any{key: value})
}

func (s *BoltStore) PutMany(ctx context.Context, entries map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoded := make(map[string][]byte, len(entries))
	for k, v := range entries {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("bolt encode %s: %w", k, err)
		}
		encoded[k] = data
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(stateBucket)
		for k, data := range encoded {
			if err := b.Put([]byte(k), data); err != nil {
				return fmt.Errorf("bolt put %s: %w", k, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(stateBucket).Delete([]byte(key))
	})
}

func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(stateBucket) == nil {
			return ErrStoreUnavailable
		}
		return nil
	})
}

// PutRaw writes bytes as-is (dipakai test untuk simulasi data korup).
func (s *BoltStore) PutRaw(key string, raw []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(stateBucket).Put([]byte(key), raw)
	})
}

func (s *BoltStore) Close() error { return s.db.Close() }
