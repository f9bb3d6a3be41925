package domain

import (
	"errors"
	"time"
)

var ErrDeviceNotFound = errors.New("device not found")

// ReceivedAtField is the payload key stamped on every merge with the
// ingestion time of the most recent event.
const ReceivedAtField = "receivedAt"

// Payload is the schema-less telemetry snapshot of a device. Fields are
// whatever the device last reported; there is no type-level schema.
type Payload map[string]any

// Merge returns a shallow copy of p with fields overlaid on top,
// last write wins per field. The receiver is not mutated.
func (p Payload) Merge(fields Payload) Payload {
	merged := make(Payload, len(p)+len(fields))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// DeviceRecord holds the latest merged telemetry snapshot for one device.
// Old fields persist across merges unless overwritten by a same-named
// field in a newer event; no history is retained.
type DeviceRecord struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"device_id"`
	Payload     Payload   `json:"data"`
	LastUpdated time.Time `json:"last_updated"`
}
