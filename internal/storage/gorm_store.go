package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "pocketledger/internal/errors"
)

// Slot is the GORM model backing one persisted storage slot.
type Slot struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name singular to match the migration files.
func (Slot) TableName() string { return "slots" }

// GormStore is the device-scoped slot store. Slots written here survive
// until explicitly deleted or overwritten by a restore.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a slot store over an open database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get returns the slot value, or ok=false if the slot was never written.
func (s *GormStore) Get(key string) (string, bool, error) {
	var slot Slot
	if err := s.db.First(&slot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return slot.Value, true, nil
}

// Set writes the slot value, replacing any previous value.
func (s *GormStore) Set(key, value string) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.Save(&slot).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (s *GormStore) Delete(key string) error {
	if err := s.db.Delete(&Slot{}, "key = ?", key).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
