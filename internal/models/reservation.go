package models

import (
	"time"

	"gorm.io/gorm"
)

type ApprovalStatus string

const (
	StatusApproved ApprovalStatus = "approved"
	StatusPending  ApprovalStatus = "pending"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Reservation is an append-only record: rows are inserted by the admission
// engine and only their approval status is ever mutated afterwards.
type Reservation struct {
	gorm.Model
	DeviceID uint `gorm:"not null;index"`
	Device   Device

	ResearcherID uint `gorm:"not null;index"`
	Researcher   User `gorm:"foreignKey:ResearcherID"`

	RequestedAt time.Time
	StartsAt    time.Time
	Hours       int `gorm:"not null"` // wall-clock hours, 1..8

	Status       ApprovalStatus `gorm:"type:varchar(20);not null"`
	ApprovedByID *uint
	ApprovedBy   *User `gorm:"foreignKey:ApprovedByID"`
}
