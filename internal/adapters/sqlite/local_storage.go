// Package sqlite implements ports.LocalStorage on a SQLite database via gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DefaultFileName is the database file created under the state directory.
const DefaultFileName = "dreamteam.db"

// entry is one namespaced value.
type entry struct {
	Namespace string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "local_storage" }

// LocalStorage keeps values in the local_storage table.
type LocalStorage struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates the
// schema. Use ":memory:" for a throwaway database.
func Open(path string) (*LocalStorage, error) {
	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &LocalStorage{db: db}, nil
}

// Get returns the value stored under namespace.
func (s *LocalStorage) Get(ctx context.Context, namespace string) ([]byte, bool, error) {
	var e entry
	err := s.db.WithContext(ctx).First(&e, "namespace = ?", namespace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

// Set upserts the value for namespace.
func (s *LocalStorage) Set(ctx context.Context, namespace string, value []byte) error {
	e := entry{Namespace: namespace, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Remove deletes the row for namespace.
func (s *LocalStorage) Remove(ctx context.Context, namespace string) error {
	return s.db.WithContext(ctx).Delete(&entry{}, "namespace = ?", namespace).Error
}

// Close closes the underlying database connection.
func (s *LocalStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
