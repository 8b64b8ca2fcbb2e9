// file: internals/databases/store.go
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"attendku_backend/internals/configs"
)

// ErrStoreUnavailable: backend tidak bisa dihubungi / timeout.
var ErrStoreUnavailable = errors.New("penyimpanan tidak tersedia")

// Store: key-value sederhana, value berupa dokumen JSON.
type Store interface {
	// Get decodes the value into out; false when the key has never been written.
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	// PutMany writes all entries atomically.
	PutMany(ctx context.Context, entries map[string]any) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Driver() string
	Close() error
}

// OpenStore memilih backend dari STORE_DRIVER (bolt | postgres).
func OpenStore() (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(configs.GetEnv("STORE_DRIVER", "bolt")))
	switch driver {
	case "postgres", "pg":
		ConnectDB()
		TunePool()
		s, err := NewGormStore(DB)
		if err != nil {
			return nil, err
		}
		WarmUp(s)
		return s, nil
	case "bolt", "":
		path := configs.GetEnv("BOLT_PATH", "attendku.db")
		s, err := OpenBoltStore(path)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Bolt store dibuka: %s", path)
		return s, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", driver)
}

// WarmUp: ping ringan di background supaya koneksi pertama tidak lambat
func WarmUp(s Store) {
	go func() {
		if err := s.Ping(context.Background()); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}
