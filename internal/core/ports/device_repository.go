package ports

import (
	"context"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// DeviceRepository persists the latest merged telemetry snapshot per
// device. Lookup misses return domain.ErrDeviceNotFound.
type DeviceRepository interface {
	// FindByID returns the record for deviceID.
	FindByID(ctx context.Context, deviceID string) (*domain.DeviceRecord, error)

	// FindByIDs returns the records for the given device ids, most
	// recently updated first. Ids with no record are skipped.
	FindByIDs(ctx context.Context, deviceIDs []string) ([]*domain.DeviceRecord, error)

	// MergeUpsert overlays fields onto the stored snapshot for deviceID,
	// creating the record if absent, and returns the merged result. The
	// merge is atomic with respect to concurrent merges for the same
	// device.
	MergeUpsert(ctx context.Context, deviceID string, fields domain.Payload) (*domain.DeviceRecord, error)
}
