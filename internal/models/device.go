package models

import "time"

// Device is a registered push subscription. The player ID is the OneSignal
// subscription identifier; one row per device, upserted on re-registration.
// Timezone is informational only - all scheduling is done in UTC instants.
type Device struct {
	PlayerID  string    `gorm:"primaryKey;size:200" json:"player_id"`
	Timezone  string    `gorm:"size:64;not null" json:"timezone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// RegisterDeviceRequest represents the data needed to register a device
type RegisterDeviceRequest struct {
	PlayerID string `json:"player_id" binding:"required,min=6,max=200"`
	Timezone string `json:"timezone" binding:"required,min=3,max=64"`
}
