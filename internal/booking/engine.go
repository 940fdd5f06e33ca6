package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/estebancatanoe/IngenieriaWeb/internal/models"
)

// Engine decides whether reservation requests are admitted and applies
// administrative approval transitions. It is stateless apart from the
// per-device admission locks; all data lives behind the collaborator
// interfaces injected at construction.
type Engine struct {
	devices      DeviceRegistry
	users        UserLookup
	reservations ReservationStore
	loans        LoanSource
	clock        Clock

	mu          sync.Mutex
	deviceLocks map[uint]*sync.Mutex
}

func NewEngine(devices DeviceRegistry, users UserLookup, reservations ReservationStore, loans LoanSource, clock Clock) *Engine {
	return &Engine{
		devices:      devices,
		users:        users,
		reservations: reservations,
		loans:        loans,
		clock:        clock,
		deviceLocks:  make(map[uint]*sync.Mutex),
	}
}

// deviceLock returns the admission lock for a device. At most one in-flight
// admission per device: the overlap check and the insert must not interleave
// with another request for the same device.
func (e *Engine) deviceLock(deviceID uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.deviceLocks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		e.deviceLocks[deviceID] = l
	}
	return l
}

// CreateReservation validates a reservation request and, if every check
// passes, persists it with status approved. Checks run in a fixed order and
// the first violation wins; callers rely on the specific rejection kind.
func (e *Engine) CreateReservation(ctx context.Context, deviceID uint, username string, start time.Time, hours int) (*models.Reservation, error) {
	if deviceID == 0 {
		return nil, reject(KindInvalidInput, "device code must not be empty")
	}
	if username == "" {
		return nil, reject(KindInvalidInput, "researcher username must not be empty")
	}
	if start.IsZero() {
		return nil, reject(KindInvalidInput, "requested start time must not be empty")
	}
	now := e.clock.Now()
	if !start.After(now) {
		return nil, reject(KindInvalidInput, "requested start time must be in the future")
	}
	if hours < 1 || hours > 8 {
		return nil, reject(KindInvalidInput, "requested hours must be between 1 and 8")
	}

	device, err := e.devices.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return nil, reject(KindNotFound, "the requested device does not exist")
		}
		return nil, err
	}
	if device.Retired {
		return nil, reject(KindDeviceRetired, "the device has been retired")
	}
	if device.State != models.DeviceAvailable {
		return nil, reject(KindDeviceUnavailable, "the device is not available")
	}

	user, err := e.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, reject(KindNotFound, "the researcher username does not exist")
		}
		return nil, err
	}
	if user.Role != models.RoleResearcher {
		return nil, reject(KindForbidden, "the user does not hold the researcher role")
	}
	if user.Sanctioned() {
		return nil, reject(KindUserSanctioned, "the user is sanctioned")
	}

	overdue, err := e.hasOverdueLoans(ctx, user)
	if err != nil {
		return nil, err
	}
	if overdue {
		return nil, reject(KindOverdueLoans, "the user has unreturned devices past their due date")
	}

	// Overlap check and insert are serialized per device, so two concurrent
	// requests cannot both pass the check against a stale snapshot.
	lock := e.deviceLock(deviceID)
	lock.Lock()
	defer lock.Unlock()

	ok, err := e.windowFree(ctx, deviceID, start, hours)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reject(KindScheduleConflict, "the reservation overlaps a previously admitted reservation")
	}

	reservation := &models.Reservation{
		DeviceID:     device.ID,
		ResearcherID: user.ID,
		RequestedAt:  now,
		StartsAt:     start,
		Hours:        hours,
		Status:       models.StatusApproved, // auto-approval on creation
	}
	if err := e.reservations.Insert(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// windowFree reports whether the candidate window can be admitted on the
// device. The rule is deliberately end-point-only: a candidate is rejected
// exactly when its end instant falls strictly inside an existing window.
// Other intersection shapes (candidate fully containing an existing window,
// or starting inside one but ending after it) are admitted. Existing data
// was accepted under this rule, so it is kept as-is.
func (e *Engine) windowFree(ctx context.Context, deviceID uint, start time.Time, hours int) (bool, error) {
	existing, err := e.reservations.FindByDevice(ctx, deviceID)
	if err != nil {
		return false, err
	}
	end := windowEnd(start, hours)
	for _, r := range existing {
		otherEnd := windowEnd(r.StartsAt, r.Hours)
		if end.After(r.StartsAt) && end.Before(otherEnd) {
			return false, nil
		}
	}
	return true, nil
}

// hasOverdueLoans scans every reservation owned by the user and every loan
// derived from each. Dataset sizes are small institutional pools, so the
// linear scan is fine.
func (e *Engine) hasOverdueLoans(ctx context.Context, user *models.User) (bool, error) {
	owned, err := e.reservations.FindByUser(ctx, user.ID)
	if err != nil {
		return false, err
	}
	now := e.clock.Now()
	for _, r := range owned {
		loans, err := e.loans.FindByReservation(ctx, r.ID)
		if err != nil {
			return false, err
		}
		for i := range loans {
			if loans[i].Overdue(now) {
				return true, nil
			}
		}
	}
	return false, nil
}

// UpdateApprovalStatus applies an administrative approval transition and
// records the acting administrator on the reservation.
func (e *Engine) UpdateApprovalStatus(ctx context.Context, reservationID uint, adminUsername string, status models.ApprovalStatus) (*models.Reservation, error) {
	if reservationID == 0 {
		return nil, reject(KindInvalidInput, "reservation code must not be empty")
	}
	if adminUsername == "" {
		return nil, reject(KindInvalidInput, "administrator username must not be empty")
	}
	if !status.Valid() {
		return nil, reject(KindInvalidInput, "approval status must be approved, pending or rejected")
	}

	admin, err := e.users.GetByUsername(ctx, adminUsername)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, reject(KindNotFound, "the administrator username does not exist")
		}
		return nil, err
	}
	if admin.Role != models.RoleAdministrator {
		return nil, reject(KindForbidden, "the user does not hold the administrator role")
	}

	reservation, err := e.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return nil, reject(KindNotFound, "the reservation does not exist")
		}
		return nil, err
	}

	reservation.Status = status
	reservation.ApprovedByID = &admin.ID
	if err := e.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// ListUserReservations returns every reservation owned by the named user.
func (e *Engine) ListUserReservations(ctx context.Context, username string) ([]models.Reservation, error) {
	if username == "" {
		return nil, reject(KindInvalidInput, "username must not be empty")
	}
	user, err := e.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, reject(KindNotFound, "the username does not exist")
		}
		return nil, err
	}
	return e.reservations.FindByUser(ctx, user.ID)
}

// ListReservations returns every reservation in the store.
func (e *Engine) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return e.reservations.FindAll(ctx)
}
