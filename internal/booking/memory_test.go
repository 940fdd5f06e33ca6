package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/estebancatanoe/IngenieriaWeb/internal/models"
)

// In-memory collaborator fakes for engine tests.

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type memDevices struct {
	mu     sync.RWMutex
	byID   map[uint]*models.Device
	nextID uint
}

func newMemDevices() *memDevices {
	return &memDevices{byID: make(map[uint]*models.Device)}
}

func (s *memDevices) GetByID(_ context.Context, id uint) (*models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *memDevices) Insert(_ context.Context, d *models.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		s.nextID++
		d.ID = s.nextID
	}
	copied := *d
	s.byID[d.ID] = &copied
	return nil
}

func (s *memDevices) Update(_ context.Context, d *models.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *d
	s.byID[d.ID] = &copied
	return nil
}

func (s *memDevices) ListActive(_ context.Context) ([]models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Device
	for id := uint(1); id <= s.nextID; id++ {
		if d, ok := s.byID[id]; ok && !d.Retired {
			out = append(out, *d)
		}
	}
	return out, nil
}

type memUsers struct {
	mu     sync.RWMutex
	byName map[string]*models.User
	nextID uint
}

func newMemUsers() *memUsers {
	return &memUsers{byName: make(map[string]*models.User)}
}

func (s *memUsers) add(u *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		s.nextID++
		u.ID = s.nextID
	}
	copied := *u
	s.byName[u.Username] = &copied
	return u
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

type memReservations struct {
	mu     sync.RWMutex
	byID   map[uint]*models.Reservation
	nextID uint
}

func newMemReservations() *memReservations {
	return &memReservations{byID: make(map[uint]*models.Reservation)}
}

func (s *memReservations) Insert(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		s.nextID++
		r.ID = s.nextID
	}
	copied := *r
	s.byID[r.ID] = &copied
	return nil
}

func (s *memReservations) Update(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *r
	s.byID[r.ID] = &copied
	return nil
}

func (s *memReservations) GetByID(_ context.Context, id uint) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *memReservations) FindByDevice(_ context.Context, deviceID uint) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for id := uint(1); id <= s.nextID; id++ {
		if r, ok := s.byID[id]; ok && r.DeviceID == deviceID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memReservations) FindByUser(_ context.Context, userID uint) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for id := uint(1); id <= s.nextID; id++ {
		if r, ok := s.byID[id]; ok && r.ResearcherID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memReservations) FindAll(_ context.Context) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for id := uint(1); id <= s.nextID; id++ {
		if r, ok := s.byID[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memReservations) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

type memLoans struct {
	mu            sync.RWMutex
	byReservation map[uint][]models.Loan
}

func newMemLoans() *memLoans {
	return &memLoans{byReservation: make(map[uint][]models.Loan)}
}

func (s *memLoans) add(reservationID uint, loan models.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan.ReservationID = reservationID
	s.byReservation[reservationID] = append(s.byReservation[reservationID], loan)
}

func (s *memLoans) FindByReservation(_ context.Context, reservationID uint) ([]models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Loan(nil), s.byReservation[reservationID]...), nil
}

// fixture wires an engine against the in-memory fakes with a fixed clock.
type fixture struct {
	devices      *memDevices
	users        *memUsers
	reservations *memReservations
	loans        *memLoans
	clock        *fakeClock
	engine       *Engine
}

var baseTime = time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		devices:      newMemDevices(),
		users:        newMemUsers(),
		reservations: newMemReservations(),
		loans:        newMemLoans(),
		clock:        &fakeClock{now: baseTime},
	}
	f.engine = NewEngine(f.devices, f.users, f.reservations, f.loans, f.clock)
	return f
}

func (f *fixture) addDevice(t *testing.T, state models.DeviceState, retired bool) *models.Device {
	t.Helper()
	d := &models.Device{
		DeviceType: "oscilloscope",
		Brand:      "Tektronix",
		State:      state,
		AcquiredAt: baseTime.AddDate(-1, 0, 0),
		Retired:    retired,
	}
	if err := f.devices.Insert(context.Background(), d); err != nil {
		t.Fatalf("seed device: %v", err)
	}
	return d
}

func (f *fixture) addUser(t *testing.T, username string, role models.UserRole, sanctionedUntil *time.Time) *models.User {
	t.Helper()
	return f.users.add(&models.User{
		Username:        username,
		Role:            role,
		SanctionedUntil: sanctionedUntil,
	})
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s rejection, got nil", kind)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected %s rejection, got non-business error: %v", kind, err)
	}
	if got != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, got, err)
	}
}
