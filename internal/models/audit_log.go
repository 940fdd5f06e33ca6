package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID uint
	User   User

	Entity   string `gorm:"size:50;not null"` // "device", "reservation"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "retire", "status_change"
	Details  string `gorm:"type:text"`
}
