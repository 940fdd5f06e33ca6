package models

import (
	"time"

	"gorm.io/gorm"
)

// DeviceState is an operational state tag compared by equality. Only
// DeviceAvailable devices can be reserved.
type DeviceState string

const (
	DeviceAvailable DeviceState = "AVAILABLE"
	DeviceLoaned    DeviceState = "LOANED"
	DeviceInRepair  DeviceState = "IN_REPAIR"
)

type Device struct {
	gorm.Model
	Description string      `gorm:"type:text"`
	DeviceType  string      `gorm:"size:100;not null"`
	Brand       string      `gorm:"size:100"`
	Value       string      `gorm:"size:50"` // monetary value, free-form
	State       DeviceState `gorm:"type:varchar(50);not null"`
	Note        string      `gorm:"type:text"`
	AcquiredAt  time.Time

	// Soft-delete. Retired devices stay in the table but are excluded
	// from reservation eligibility and from default listings.
	Retired     bool `gorm:"not null;default:false"`
	RetiredAt   *time.Time
	RetiredByID *uint
	RetiredBy   *User `gorm:"foreignKey:RetiredByID"`
}
