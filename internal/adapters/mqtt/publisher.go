// Package mqtt publishes ambient light events to an MQTT broker.
//
// Topics, relative to the configured prefix:
//
//	<prefix>/event        JSON threshold events (qos 1)
//	<prefix>/state        "dark" or "bright", retained, only on change
//	<prefix>/illuminance  raw lux (qos 0), when PublishRaw is set
//	<prefix>/availability "online"/"offline", retained, last will
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/ports"
)

// ErrPublishTimeout is returned when the broker does not acknowledge in time
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Config holds MQTT publisher configuration
type Config struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	PublishRaw     bool
	PublishTimeout time.Duration
}

// publishClient is the subset of pahomqtt.Client the publisher uses
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

// Publisher implements ports.Publisher on top of paho
type Publisher struct {
	cfg    Config
	client publishClient
	conn   pahomqtt.Client // nil when built from a bare publishClient

	mu        sync.Mutex
	lastState domain.EventKind
}

// eventPayload is the JSON body published on <prefix>/event
type eventPayload struct {
	ID        int64   `json:"id"`
	Kind      string  `json:"kind"`
	Lux       float64 `json:"lux"`
	Timestamp int64   `json:"timestamp_ms"`
}

// Connect dials the broker and returns a ready publisher
func Connect(cfg Config) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: broker is required")
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = time.Second
	}

	availability := topic(cfg.TopicPrefix, "availability")

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10*time.Second).
		SetWill(availability, "offline", 1, true)

	opts.SetOnConnectHandler(func(c pahomqtt.Client) {
		log.Info().Str("broker", cfg.Broker).Msg("connected to MQTT broker")
		c.Publish(availability, 1, true, "online")
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn().Err(err).Msg("lost connection to MQTT broker")
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		return nil, fmt.Errorf("mqtt: connect to %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}

	p := newPublisher(client, cfg)
	p.conn = client
	return p, nil
}

func newPublisher(client publishClient, cfg Config) *Publisher {
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = time.Second
	}
	return &Publisher{cfg: cfg, client: client}
}

// PublishEvent sends the event and, when the state changed, the retained state
func (p *Publisher) PublishEvent(event *domain.LightEvent) error {
	payload, err := json.Marshal(eventPayload{
		ID:        event.ID,
		Kind:      string(event.Kind),
		Lux:       event.Lux,
		Timestamp: event.Timestamp.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("mqtt: marshal event: %w", err)
	}

	if err := p.publish(topic(p.cfg.TopicPrefix, "event"), 1, false, payload); err != nil {
		return err
	}

	p.mu.Lock()
	changed := p.lastState != event.Kind
	p.lastState = event.Kind
	p.mu.Unlock()

	if !changed {
		return nil
	}
	return p.publish(topic(p.cfg.TopicPrefix, "state"), 1, true, string(event.Kind))
}

// PublishLux sends a raw reading when PublishRaw is enabled
func (p *Publisher) PublishLux(lux float64) error {
	if !p.cfg.PublishRaw {
		return nil
	}
	return p.publish(topic(p.cfg.TopicPrefix, "illuminance"), 0, false, strconv.FormatFloat(lux, 'f', 2, 64))
}

// Close announces offline and disconnects
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	p.conn.Publish(topic(p.cfg.TopicPrefix, "availability"), 1, true, "offline").WaitTimeout(p.cfg.PublishTimeout)
	p.conn.Disconnect(250)
}

func (p *Publisher) publish(t string, qos byte, retained bool, payload interface{}) error {
	token := p.client.Publish(t, qos, retained, payload)
	if !token.WaitTimeout(p.cfg.PublishTimeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, t)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish %s: %w", t, err)
	}
	return nil
}

func topic(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

var _ ports.Publisher = (*Publisher)(nil)
