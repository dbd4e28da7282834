package ports

import (
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

// Publisher forwards monitor events to an external bus (MQTT)
type Publisher interface {
	// PublishEvent announces a threshold crossing
	PublishEvent(event *domain.LightEvent) error

	// PublishLux announces a raw accepted sample
	PublishLux(lux float64) error
}

// NopPublisher discards everything
type NopPublisher struct{}

func (NopPublisher) PublishEvent(*domain.LightEvent) error { return nil }
func (NopPublisher) PublishLux(float64) error { return nil }

var _ Publisher = NopPublisher{}
