package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events map[string][]int // device id -> sequence numbers in processing order
}

func newRecordingService() *recordingService {
	return &recordingService{events: make(map[string][]int)}
}

func (s *recordingService) Process(_ context.Context, event ports.TelemetryEvent) {
	seq, _ := event.Fields["seq"].(int)
	s.mu.Lock()
	s.events[event.DeviceID] = append(s.events[event.DeviceID], seq)
	s.mu.Unlock()
}

func (s *recordingService) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, seqs := range s.events {
		n += len(seqs)
	}
	return n
}

func TestDispatcher_PerDeviceOrdering(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const perDevice = 50
	devices := []string{"D1", "D2", "D3", "D4", "D5"}
	for seq := 0; seq < perDevice; seq++ {
		for _, dev := range devices {
			d.Enqueue(ports.TelemetryEvent{
				DeviceID: dev,
				Fields:   map[string]any{"seq": seq},
			})
		}
	}

	deadline := time.After(5 * time.Second)
	for svc.total() < perDevice*len(devices) {
		select {
		case <-deadline:
			t.Fatalf("timed out: processed %d of %d", svc.total(), perDevice*len(devices))
		case <-time.After(10 * time.Millisecond):
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, dev := range devices {
		seqs := svc.events[dev]
		for i, seq := range seqs {
			if seq != i {
				t.Fatalf("device %s processed out of order: %v", dev, seqs)
			}
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingService(), zerolog.Nop())

	for _, dev := range []string{"D1", "meter-42", ""} {
		first := d.shardIndex(dev)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(dev); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", dev, first, got)
			}
		}
	}
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	svc := newRecordingService()
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	// Give the worker a moment to observe cancellation, then verify an
	// enqueued event is left unprocessed.
	time.Sleep(20 * time.Millisecond)
	d.Enqueue(ports.TelemetryEvent{DeviceID: "D1", Fields: map[string]any{"seq": 0}})
	time.Sleep(20 * time.Millisecond)

	if svc.total() != 0 {
		t.Fatalf("worker should not process after cancel")
	}
}
