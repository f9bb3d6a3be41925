package ports

import (
	"context"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// TelemetryEvent is one inbound telemetry message after JSON decoding.
// Fields holds everything except the device id.
type TelemetryEvent struct {
	DeviceID string
	Fields   domain.Payload
}

// TelemetryService processes inbound telemetry events. Process never
// returns an error to the transport: every failure is terminal per event
// (logged and dropped) so a bad message can neither crash the ingestion
// path nor block delivery acknowledgement.
type TelemetryService interface {
	Process(ctx context.Context, event TelemetryEvent)
}
