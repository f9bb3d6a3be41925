package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/api/metrics"
	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

type telemetryService struct {
	identityRepo ports.IdentityRepository
	deviceRepo   ports.DeviceRepository
	log          zerolog.Logger
}

// NewTelemetryService returns the ingestion pipeline: device-to-owner
// validation followed by a merge into device state.
func NewTelemetryService(identityRepo ports.IdentityRepository, deviceRepo ports.DeviceRepository, log zerolog.Logger) ports.TelemetryService {
	return &telemetryService{identityRepo: identityRepo, deviceRepo: deviceRepo, log: log}
}

// Process handles one telemetry event. All failure is terminal per event:
// malformed events, events from unregistered devices, and store errors are
// logged and dropped without propagating to the transport.
func (s *telemetryService) Process(ctx context.Context, event ports.TelemetryEvent) {
	start := time.Now()

	if event.DeviceID == "" {
		s.log.Error().Msg("telemetry event missing device id")
		metrics.TelemetryDroppedTotal.WithLabelValues("missing_device_id").Inc()
		return
	}

	// Only devices bound to an identity are trusted sources.
	if _, err := s.identityRepo.FindByDeviceID(ctx, event.DeviceID); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.log.Warn().Str("device_id", event.DeviceID).Msg("telemetry from unregistered device dropped")
			metrics.TelemetryDroppedTotal.WithLabelValues("unregistered_device").Inc()
		} else {
			s.log.Error().Err(err).Str("device_id", event.DeviceID).Msg("ownership lookup failed, event dropped")
			metrics.TelemetryDroppedTotal.WithLabelValues("store_error").Inc()
		}
		return
	}

	if _, err := s.deviceRepo.MergeUpsert(ctx, event.DeviceID, event.Fields); err != nil {
		s.log.Error().Err(err).Str("device_id", event.DeviceID).Msg("merge failed, event dropped")
		metrics.TelemetryDroppedTotal.WithLabelValues("store_error").Inc()
		return
	}

	metrics.TelemetryProcessedTotal.Inc()
	metrics.TelemetryProcessingDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("device_id", event.DeviceID).
		Int("fields", len(event.Fields)).
		Msg("telemetry merged")
}
