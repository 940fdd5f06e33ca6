package storage

import (
	"context"
	"errors"

	"github.com/estebancatanoe/IngenieriaWeb/internal/booking"
	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"gorm.io/gorm"
)

// DeviceStore is the gorm-backed device registry.
type DeviceStore struct {
	db *gorm.DB
}

func NewDeviceStore(db *gorm.DB) *DeviceStore {
	return &DeviceStore{db: db}
}

func (s *DeviceStore) GetByID(ctx context.Context, id uint) (*models.Device, error) {
	var device models.Device
	if err := s.db.WithContext(ctx).First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

func (s *DeviceStore) Insert(ctx context.Context, d *models.Device) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *DeviceStore) Update(ctx context.Context, d *models.Device) error {
	return s.db.WithContext(ctx).Save(d).Error
}

func (s *DeviceStore) ListActive(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	err := s.db.WithContext(ctx).
		Where("retired = ?", false).
		Order("id asc").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}
