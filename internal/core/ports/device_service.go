package ports

import (
	"context"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// DeviceService serves authorized reads over device state. Authorization
// is decided against the device set embedded in the caller's token, a
// point-in-time snapshot taken at login.
type DeviceService interface {
	// GetDevice returns the record for deviceID. domain.ErrForbidden when
	// deviceID is not in ownedDevices (checked before existence, so callers
	// cannot probe for devices they do not own), domain.ErrDeviceNotFound
	// for an owned device that has never reported.
	GetDevice(ctx context.Context, deviceID string, ownedDevices []string) (*domain.DeviceRecord, error)

	// ListOwnedDevices returns the caller's device records, most recently
	// updated first.
	ListOwnedDevices(ctx context.Context, ownedDevices []string) ([]*domain.DeviceRecord, error)

	// ListIdentities returns all registered identities, hashes excluded.
	ListIdentities(ctx context.Context) ([]*domain.Identity, error)
}
