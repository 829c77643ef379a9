// Package stream connects the ingestion listener to the wearable's
// MQTT feed. The broker pushes batches of periodic samples as JSON;
// connection loss is surfaced to the listener as a transport-reset so
// its own backoff policy owns reconnection.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// MQTTConfig holds broker connection settings.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// MQTTSource implements ingest.SampleSource over an MQTT subscription.
type MQTTSource struct {
	config MQTTConfig
	logger *zap.Logger
}

// NewMQTTSource creates a sample source for the given broker settings.
func NewMQTTSource(cfg MQTTConfig, logger *zap.Logger) *MQTTSource {
	if cfg.QoS == 0 {
		cfg.QoS = 1
	}
	return &MQTTSource{config: cfg, logger: logger}
}

// Subscribe connects to the broker and subscribes to the sample topic.
// Paho's auto-reconnect is disabled: the listener schedules retries.
func (s *MQTTSource) Subscribe(ctx context.Context, onSample ingest.SampleHandler, onError ingest.ErrorHandler) (ingest.Subscription, error) {
	if s.config.Topic == "" {
		return nil, &ingest.SourceError{Kind: ingest.ErrorKindInternal, Err: fmt.Errorf("sample topic not configured")}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.config.Broker)
	opts.SetClientID(s.config.ClientID)
	if s.config.Username != "" {
		opts.SetUsername(s.config.Username)
	}
	if s.config.Password != "" {
		opts.SetPassword(s.config.Password)
	}
	opts.SetAutoReconnect(false)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		onError(&ingest.SourceError{Kind: ingest.ErrorKindTransportReset, Err: err})
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, classifyConnectError(token.Error())
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		samples, err := decodeSamples(msg.Payload())
		if err != nil {
			// Malformed payloads are dropped, not fatal.
			s.logger.Warn("dropping undecodable sample payload",
				zap.String("topic", msg.Topic()),
				zap.Error(err),
			)
			return
		}
		for _, sample := range samples {
			onSample(sample)
		}
	}

	if token := client.Subscribe(s.config.Topic, s.config.QoS, handler); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, &ingest.SourceError{Kind: ingest.ErrorKindUnavailable, Err: token.Error()}
	}

	s.logger.Info("subscribed to sample stream",
		zap.String("broker", s.config.Broker),
		zap.String("topic", s.config.Topic),
	)

	return &mqttSubscription{client: client, topic: s.config.Topic}, nil
}

// decodeSamples accepts either a JSON array of samples or a single
// sample object.
func decodeSamples(payload []byte) ([]domain.PeriodicSample, error) {
	var batch []domain.PeriodicSample
	if err := json.Unmarshal(payload, &batch); err == nil {
		return batch, nil
	}

	var single domain.PeriodicSample
	if err := json.Unmarshal(payload, &single); err != nil {
		return nil, err
	}
	return []domain.PeriodicSample{single}, nil
}

func classifyConnectError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not authorized"), strings.Contains(msg, "bad user name or password"):
		return &ingest.SourceError{Kind: ingest.ErrorKindPermissionDenied, Err: err}
	case strings.Contains(msg, "timeout"):
		return &ingest.SourceError{Kind: ingest.ErrorKindDeadlineExceeded, Err: err}
	default:
		return &ingest.SourceError{Kind: ingest.ErrorKindUnavailable, Err: err}
	}
}

type mqttSubscription struct {
	client mqtt.Client
	topic  string
}

func (s *mqttSubscription) Close() {
	if s.client.IsConnected() {
		if token := s.client.Unsubscribe(s.topic); token.Wait() && token.Error() != nil {
			// Disconnect below still releases the session.
			_ = token.Error()
		}
	}
	s.client.Disconnect(250)
}
