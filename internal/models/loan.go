package models

import (
	"time"

	"gorm.io/gorm"
)

// Loan records a device physically handed over against a reservation.
// The admission engine only reads loans, to detect overdue returns.
type Loan struct {
	gorm.Model
	ReservationID uint `gorm:"not null;index"`
	Reservation   Reservation

	HandedOverAt time.Time
	MaxReturnAt  time.Time
	ReturnedAt   *time.Time
}

func (l *Loan) Overdue(now time.Time) bool {
	return l.ReturnedAt == nil && l.MaxReturnAt.Before(now)
}
