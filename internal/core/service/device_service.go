package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// DeviceService serves reads over device state, scoped by the owned-device
// snapshot carried in the caller's token.
type DeviceService struct {
	identityRepo ports.IdentityRepository
	deviceRepo   ports.DeviceRepository
	log          zerolog.Logger
}

func NewDeviceService(identityRepo ports.IdentityRepository, deviceRepo ports.DeviceRepository, log zerolog.Logger) *DeviceService {
	return &DeviceService{identityRepo: identityRepo, deviceRepo: deviceRepo, log: log}
}

// GetDevice returns the merged record for deviceID. Ownership is checked
// before existence so a caller cannot learn whether a foreign device exists.
func (s *DeviceService) GetDevice(ctx context.Context, deviceID string, ownedDevices []string) (*domain.DeviceRecord, error) {
	if !contains(ownedDevices, deviceID) {
		s.log.Warn().Str("device_id", deviceID).Msg("device access denied")
		return nil, domain.ErrForbidden
	}

	record, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if err == domain.ErrDeviceNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return record, nil
}

// ListOwnedDevices returns the caller's device records, most recently
// updated first. Owned devices that never reported are simply absent.
func (s *DeviceService) ListOwnedDevices(ctx context.Context, ownedDevices []string) ([]*domain.DeviceRecord, error) {
	if len(ownedDevices) == 0 {
		return []*domain.DeviceRecord{}, nil
	}
	records, err := s.deviceRepo.FindByIDs(ctx, ownedDevices)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return records, nil
}

// ListIdentities returns every registered identity, credential hashes
// excluded by the repository projection.
func (s *DeviceService) ListIdentities(ctx context.Context) ([]*domain.Identity, error) {
	identities, err := s.identityRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	return identities, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
