// file: internals/databases/gorm_store.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* =========================================================
   Tabel
========================================================= */

type StateEntry struct {
	Key       string         `gorm:"column:state_key;type:varchar(64);primaryKey"`
	Value     datatypes.JSON `gorm:"column:state_value;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:state_updated_at;not null;autoUpdateTime"`
}

func (StateEntry) TableName() string { return "app_state_entries" }

// StateBatch: jejak setiap penulisan multi-key (import).
type StateBatch struct {
	ID        uuid.UUID      `gorm:"column:state_batch_id;type:uuid;primaryKey"`
	Keys      pq.StringArray `gorm:"column:state_batch_keys;type:text[];not null"`
	CreatedAt time.Time      `gorm:"column:state_batch_created_at;not null;autoCreateTime"`
}

func (StateBatch) TableName() string { return "app_state_batches" }

/* =========================================================
   Store
========================================================= */

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StateEntry{}, &StateBatch{}); err != nil {
		return nil, mapPGError("migrate", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Driver() string { return "postgres" }

func (s *GormStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var row StateEntry
	err := s.db.WithContext(ctx).Where("state_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapPGError("get "+key, err)
	}
	if err := json.Unmarshal(row.Value, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value any) error {
	row, err := encodeEntry(key, value)
	if err != nil {
		return err
	}
	return mapPGError("put "+key, upsert(s.db.WithContext(ctx), row))
}

func (s *GormStore) PutMany(ctx context.Context, entries map[string]any) error {
	rows := make([]StateEntry, 0, len(entries))
	keys := make([]string, 0, len(entries))
	for k, v := range entries {
		row, err := encodeEntry(k, v)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := upsert(tx, row); err != nil {
				return err
			}
		}
		return tx.Create(&StateBatch{ID: uuid.New(), Keys: pq.StringArray(keys)}).Error
	})
	return mapPGError("put batch", err)
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("state_key = ?", key).Delete(&StateEntry{}).Error
	return mapPGError("delete "+key, err)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func encodeEntry(key string, value any) (StateEntry, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return StateEntry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return StateEntry{Key: key, Value: datatypes.JSON(data), UpdatedAt: time.Now()}, nil
}

func upsert(tx *gorm.DB, row StateEntry) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"state_value", "state_updated_at"}),
	}).Create(&row).Error
}

/* =========================================================
   PG error mapping
========================================================= */

// mapPGError: koneksi / timeout → ErrStoreUnavailable, sisanya dibungkus apa adanya.
func mapPGError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "57014", "57P01", "53300": // query_canceled (statement_timeout), admin_shutdown, too_many_connections
			return fmt.Errorf("%s: %w (%s)", op, ErrStoreUnavailable, pgErr.Code)
		}
		return fmt.Errorf("%s: pg %s: %s", op, pgErr.Code, pgErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
