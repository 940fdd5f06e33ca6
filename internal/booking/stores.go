package booking

import (
	"context"
	"errors"

	"github.com/estebancatanoe/IngenieriaWeb/internal/models"
)

// Not-found signals returned by the collaborator implementations. A missing
// key is data, not a storage failure.
var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// DeviceRegistry tracks device identity, availability state and
// soft-deletion.
type DeviceRegistry interface {
	GetByID(ctx context.Context, id uint) (*models.Device, error)
	Insert(ctx context.Context, d *models.Device) error
	Update(ctx context.Context, d *models.Device) error
	ListActive(ctx context.Context) ([]models.Device, error)
}

// UserLookup supplies role and sanction status. The engine consumes it
// read-only.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type ReservationStore interface {
	Insert(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByDevice(ctx context.Context, deviceID uint) ([]models.Reservation, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
}

// LoanSource exposes the loans derived from a reservation, read-only.
type LoanSource interface {
	FindByReservation(ctx context.Context, reservationID uint) ([]models.Loan, error)
}
