package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleResearcher    UserRole = "researcher"
	RoleAdministrator UserRole = "administrator"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`

	// SanctionedUntil marks the user as sanctioned. Presence alone is
	// binding: the engine never compares this date against now.
	SanctionedUntil *time.Time
}

func (u *User) Sanctioned() bool {
	return u.SanctionedUntil != nil
}
