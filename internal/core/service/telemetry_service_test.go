package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

func registeredRepo(t *testing.T, deviceIDs ...string) *stubIdentityRepo {
	t.Helper()
	repo := newStubIdentityRepo()
	if _, err := repo.Create(context.Background(), &domain.Identity{
		ConsumerNo: "C1",
		DeviceIDs:  deviceIDs,
	}); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	return repo
}

func TestTelemetryService_MergesRegisteredDevice(t *testing.T) {
	deviceRepo := newStubDeviceRepo()
	svc := NewTelemetryService(registeredRepo(t, "D1"), deviceRepo, zerolog.Nop())

	svc.Process(context.Background(), ports.TelemetryEvent{
		DeviceID: "D1",
		Fields:   domain.Payload{"temp": 21},
	})
	svc.Process(context.Background(), ports.TelemetryEvent{
		DeviceID: "D1",
		Fields:   domain.Payload{"hum": 55},
	})

	rec := deviceRepo.records["D1"]
	if rec == nil {
		t.Fatalf("record not created")
	}
	if rec.Payload["temp"] != 21 || rec.Payload["hum"] != 55 {
		t.Fatalf("fields not merged: %v", rec.Payload)
	}
}

func TestTelemetryService_DropsMissingDeviceID(t *testing.T) {
	deviceRepo := newStubDeviceRepo()
	svc := NewTelemetryService(registeredRepo(t, "D1"), deviceRepo, zerolog.Nop())

	svc.Process(context.Background(), ports.TelemetryEvent{
		Fields: domain.Payload{"temp": 21},
	})

	if len(deviceRepo.records) != 0 {
		t.Fatalf("malformed event must not be persisted")
	}
}

func TestTelemetryService_DropsUnregisteredDevice(t *testing.T) {
	deviceRepo := newStubDeviceRepo()
	svc := NewTelemetryService(registeredRepo(t, "D1"), deviceRepo, zerolog.Nop())

	svc.Process(context.Background(), ports.TelemetryEvent{
		DeviceID: "rogue",
		Fields:   domain.Payload{"temp": 21},
	})

	if len(deviceRepo.records) != 0 {
		t.Fatalf("unregistered device data must be dropped")
	}
}

type failingDeviceRepo struct {
	stubDeviceRepo
}

func (r *failingDeviceRepo) MergeUpsert(context.Context, string, domain.Payload) (*domain.DeviceRecord, error) {
	return nil, errors.New("store down")
}

func TestTelemetryService_SwallowsStoreFailure(t *testing.T) {
	svc := NewTelemetryService(registeredRepo(t, "D1"), &failingDeviceRepo{}, zerolog.Nop())

	// Must not panic and must not propagate: Process has no error return.
	svc.Process(context.Background(), ports.TelemetryEvent{
		DeviceID: "D1",
		Fields:   domain.Payload{"temp": 21},
	})
}

// lockedDeviceRepo serializes MergeUpsert the way the real store does at
// single-record granularity, so concurrent merges can be exercised.
type lockedDeviceRepo struct {
	stubDeviceRepo
	mu sync.Mutex
}

func (r *lockedDeviceRepo) MergeUpsert(ctx context.Context, deviceID string, fields domain.Payload) (*domain.DeviceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stubDeviceRepo.MergeUpsert(ctx, deviceID, fields)
}

func TestTelemetryService_ConcurrentMergesUnionFields(t *testing.T) {
	deviceRepo := &lockedDeviceRepo{stubDeviceRepo: *newStubDeviceRepo()}
	svc := NewTelemetryService(registeredRepo(t, "D1"), deviceRepo, zerolog.Nop())

	var wg sync.WaitGroup
	f1 := domain.Payload{"temp": 21, "shared": "a"}
	f2 := domain.Payload{"hum": 55, "shared": "b"}
	for _, fields := range []domain.Payload{f1, f2} {
		wg.Add(1)
		go func(fields domain.Payload) {
			defer wg.Done()
			svc.Process(context.Background(), ports.TelemetryEvent{DeviceID: "D1", Fields: fields})
		}(fields)
	}
	wg.Wait()

	rec := deviceRepo.records["D1"]
	if rec == nil {
		t.Fatalf("record not created")
	}
	if rec.Payload["temp"] != 21 || rec.Payload["hum"] != 55 {
		t.Fatalf("final payload must hold the union of keys: %v", rec.Payload)
	}
	// The overlapping key holds whichever merge was serialized last,
	// never a value from neither input.
	if v := rec.Payload["shared"]; v != "a" && v != "b" {
		t.Fatalf("shared key holds foreign value: %v", v)
	}
}
