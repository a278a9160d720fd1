package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/spotter/internal/paths"
	"github.com/renato0307/spotter/internal/ports"
)

// SQLiteKVStore implements ports.KeyValueStore on a local SQLite database
type SQLiteKVStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.KeyValueStore = (*SQLiteKVStore)(nil)

// NewSQLiteKVStore opens (or creates) the local key-value database at dbPath
func NewSQLiteKVStore(dbPath string) (*SQLiteKVStore, error) {
	dbPath = paths.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers unblocked while a write is in flight
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&KeyValueModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate kv schema: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteKVStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteKVStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements ports.KeyValueStore.Get
func (s *SQLiteKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KeyValueModel
	err := WithRetry(func() error {
		return s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set implements ports.KeyValueStore.Set.
// An existing value is replaced wholesale.
func (s *SQLiteKVStore) Set(ctx context.Context, key, value string) error {
	return WithRetry(func() error {
		entry := KeyValueModel{Key: key, Value: value}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		return nil
	}, 3)
}

// Remove implements ports.KeyValueStore.Remove.
// Removing a missing key is not an error.
func (s *SQLiteKVStore) Remove(ctx context.Context, key string) error {
	return WithRetry(func() error {
		if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KeyValueModel{}).Error; err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
		return nil
	}, 3)
}

// Keys lists stored keys with the given prefix
func (s *SQLiteKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := WithRetry(func() error {
		return s.db.WithContext(ctx).Model(&KeyValueModel{}).
			Where("key LIKE ?", prefix+"%").
			Order("key").
			Pluck("key", &keys).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
