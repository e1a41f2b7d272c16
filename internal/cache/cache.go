// Package cache is the durable local side of the local-first design: a
// sqlite key/value table holding the latest machine snapshot as JSON. It is
// written on every successful mutation and read once at startup.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"equipment-maintenance-backend/internal/model"
)

// MachinesKey is the cache key under which the machine snapshot lives.
const MachinesKey = "dashboard_machines"

// Entry is one key/value row in the cache.
type Entry struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Cache is a sqlite-backed durable key/value store.
type Cache struct {
	db *gorm.DB
}

// Open opens (or creates) the cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing connection, running migrations.
func NewWithDB(db *gorm.DB) (*Cache, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("cache automigrate failed: %w", err)
	}
	return &Cache{db: db}, nil
}

// SaveMachines writes the full snapshot under MachinesKey.
func (c *Cache) SaveMachines(ctx context.Context, machines []model.Machine) error {
	payload, err := json.Marshal(machines)
	if err != nil {
		return fmt.Errorf("failed to encode machine snapshot: %w", err)
	}
	entry := Entry{Key: MachinesKey, Value: payload, UpdatedAt: time.Now().UTC()}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// LoadMachines reads the snapshot back. A cache that has never been written
// yields an empty list, not an error.
func (c *Cache) LoadMachines(ctx context.Context) ([]model.Machine, error) {
	var entry Entry
	err := c.db.WithContext(ctx).First(&entry, "key = ?", MachinesKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var machines []model.Machine
	if err := json.Unmarshal(entry.Value, &machines); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return machines, nil
}
