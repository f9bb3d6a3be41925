package mqtt

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// deviceIDKey is the wire-level field carrying the device identifier.
const deviceIDKey = "deviceId"

// Enqueuer is the interface the subscriber uses to hand events off for
// asynchronous processing.
type Enqueuer interface {
	Enqueue(event ports.TelemetryEvent)
}

// TelemetrySubscriber consumes telemetry events from the broker topic and
// feeds them into the dispatcher. Decode failures are logged and dropped;
// nothing on this path ever blocks delivery acknowledgement.
type TelemetrySubscriber struct {
	client     *Client
	topic      string
	qos        byte
	dispatcher Enqueuer
	log        zerolog.Logger
}

func NewTelemetrySubscriber(client *Client, topic string, qos byte, dispatcher Enqueuer, log zerolog.Logger) *TelemetrySubscriber {
	return &TelemetrySubscriber{
		client:     client,
		topic:      topic,
		qos:        qos,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Start subscribes to the telemetry topic.
func (s *TelemetrySubscriber) Start() error {
	return s.client.Subscribe(s.topic, s.qos, s.handleMessage)
}

func (s *TelemetrySubscriber) handleMessage(topic string, payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("malformed telemetry payload dropped")
		return nil
	}

	deviceID, _ := raw[deviceIDKey].(string)
	delete(raw, deviceIDKey)

	s.dispatcher.Enqueue(ports.TelemetryEvent{
		DeviceID: deviceID,
		Fields:   domain.Payload(raw),
	})
	return nil
}
