package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/estebancatanoe/IngenieriaWeb/internal/models"
)

// DeviceInput carries the caller-editable device fields.
type DeviceInput struct {
	Description string
	DeviceType  string
	Brand       string
	Value       string
	State       models.DeviceState
	Note        string
}

// RegisterDevice records a new device. The type is the only required field;
// an empty state defaults to available.
func (e *Engine) RegisterDevice(ctx context.Context, input DeviceInput) (*models.Device, error) {
	if strings.TrimSpace(input.DeviceType) == "" {
		return nil, reject(KindInvalidInput, "device type must not be empty")
	}
	state := input.State
	if state == "" {
		state = models.DeviceAvailable
	}

	device := &models.Device{
		Description: input.Description,
		DeviceType:  input.DeviceType,
		Brand:       input.Brand,
		Value:       input.Value,
		State:       state,
		Note:        input.Note,
		AcquiredAt:  e.clock.Now(),
		Retired:     false,
	}
	if err := e.devices.Insert(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// UpdateDevice replaces the editable fields of an existing device. The
// soft-delete fields are untouched; retirement goes through RetireDevice.
func (e *Engine) UpdateDevice(ctx context.Context, id uint, input DeviceInput) (*models.Device, error) {
	if id == 0 {
		return nil, reject(KindInvalidInput, "device code must not be empty")
	}
	if strings.TrimSpace(input.DeviceType) == "" {
		return nil, reject(KindInvalidInput, "device type must not be empty")
	}

	device, err := e.devices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return nil, reject(KindNotFound, "the device does not exist")
		}
		return nil, err
	}

	device.Description = input.Description
	device.DeviceType = input.DeviceType
	device.Brand = input.Brand
	device.Value = input.Value
	if input.State != "" {
		device.State = input.State
	}
	device.Note = input.Note

	if err := e.devices.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// RetireDevice soft-deletes a device, recording when and by whom. The row
// stays in the registry and outstanding reservations are left as they are.
func (e *Engine) RetireDevice(ctx context.Context, id uint, adminUsername string) (*models.Device, error) {
	if id == 0 {
		return nil, reject(KindInvalidInput, "device code must not be empty")
	}
	if adminUsername == "" {
		return nil, reject(KindInvalidInput, "administrator username must not be empty")
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

	device, err := e.devices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return nil, reject(KindNotFound, "the device does not exist")
		}
		return nil, err
	}

	now := e.clock.Now()
	device.Retired = true
	device.RetiredAt = &now
	device.RetiredByID = &admin.ID

	if err := e.devices.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// GetDevice returns a device by its code, whether retired or not.
func (e *Engine) GetDevice(ctx context.Context, id uint) (*models.Device, error) {
	if id == 0 {
		return nil, reject(KindInvalidInput, "device code must not be empty")
	}
	device, err := e.devices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDeviceNotFound) {
			return nil, reject(KindNotFound, "the device does not exist")
		}
		return nil, err
	}
	return device, nil
}

// ListActiveDevices returns every device that has not been retired.
func (e *Engine) ListActiveDevices(ctx context.Context) ([]models.Device, error) {
	return e.devices.ListActive(ctx)
}
