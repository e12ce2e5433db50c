package database

import (
	"time"

	"pocket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceStore is the read/upsert contract over registered push devices
type DeviceStore struct {
	db *gorm.DB
}

// NewDeviceStore creates a device store backed by the given DB
func NewDeviceStore(db *gorm.DB) *DeviceStore {
	return &DeviceStore{db: db}
}

// ListPlayerIDs returns every registered push subscription identifier
func (s *DeviceStore) ListPlayerIDs() ([]string, error) {
	var ids []string
	if err := s.db.Model(&models.Device{}).
		Where("player_id <> ''").
		Pluck("player_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Upsert registers a device, updating the timezone if the player ID exists
func (s *DeviceStore) Upsert(playerID, timezone string) (*models.Device, error) {
	device := models.Device{
		PlayerID: playerID,
		Timezone: timezone,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"timezone":   timezone,
			"updated_at": time.Now(),
		}),
	}).Create(&device).Error
	if err != nil {
		return nil, err
	}

	return &device, nil
}
