package detection

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProgressRecord is the persisted fact that a catalog item was found in a
// given form. It seeds the dedup set at startup so items already known to be
// found do not re-fire merely because the application restarted while the
// item still sits in a save file.
type ProgressRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ItemID    string    `gorm:"column:item_id;size:64;uniqueIndex:idx_progress_item_eth" json:"item_id"`
	Ethereal  bool      `gorm:"uniqueIndex:idx_progress_item_eth" json:"ethereal"`
	Name      string    `gorm:"size:128" json:"name"`
	Character string    `gorm:"size:32" json:"character"`
	Location  string    `gorm:"size:64" json:"location"`
	FoundAt   time.Time `json:"found_at"`
}

// TableName sets the table name for GORM.
func (ProgressRecord) TableName() string {
	return "grail_progress"
}

// Store persists progress records.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the progress table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&ProgressRecord{}); err != nil {
		return fmt.Errorf("failed to migrate progress table: %w", err)
	}
	return nil
}

// All returns every persisted progress record.
func (s *Store) All(ctx context.Context) ([]ProgressRecord, error) {
	var records []ProgressRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}
	return records, nil
}

// Insert persists one progress record.
func (s *Store) Insert(ctx context.Context, record *ProgressRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert progress record: %w", err)
	}
	return nil
}

// DeleteAll removes every progress record.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&ProgressRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete progress records: %w", err)
	}
	return nil
}

// Count returns the number of persisted progress records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ProgressRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count progress records: %w", err)
	}
	return count, nil
}
