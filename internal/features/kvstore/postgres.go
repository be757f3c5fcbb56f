package kvstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorageItem struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StorageItem) TableName() string {
	return "extension_storage"
}

type PostgresStore struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{
		db:      db,
		timeout: DefaultStorageTimeout,
	}
}

func (s *PostgresStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var items []StorageItem
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to read storage items: %w", err)
	}

	for _, item := range items {
		result[item.Key] = item.Value
	}

	return result, nil
}

func (s *PostgresStore) Set(ctx context.Context, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	rows := make([]StorageItem, 0, len(items))
	for key, value := range items {
		rows = append(rows, StorageItem{Key: key, Value: value, UpdatedAt: now})
	}

	// a single multi-row upsert keeps the call atomic
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to write storage items: %w", err)
	}

	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&StorageItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove storage items: %w", err)
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
