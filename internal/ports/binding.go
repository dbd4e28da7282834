package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

// LightSensor is the hardware-facing side of the binding.
// Accuracy changes are not modeled; only lux readings matter.
type LightSensor interface {
	ReadLux(ctx context.Context) (float64, error)
	Close() error
}

// SampleSink accepts timestamped samples; GuardedMonitor implements it
type SampleSink interface {
	SubmitSample(s domain.Sample) bool
}

// SensorBinding polls a LightSensor and feeds every reading to a SampleSink.
// Rate limiting is left to the sink, so the poll interval may be shorter
// than the monitor's minimum interval.
type SensorBinding struct {
	sensor   LightSensor
	sink     SampleSink
	interval time.Duration
	now      func() time.Time
}

// NewSensorBinding creates a binding that polls every interval
func NewSensorBinding(sensor LightSensor, sink SampleSink, interval time.Duration) *SensorBinding {
	return &SensorBinding{
		sensor:   sensor,
		sink:     sink,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock overrides the clock used to stamp samples
func (b *SensorBinding) WithClock(now func() time.Time) *SensorBinding {
	b.now = now
	return b
}

// Start polls the sensor until ctx is cancelled.
// Cancelling ctx is the equivalent of unregistering from the sensor service.
func (b *SensorBinding) Start(ctx context.Context) {
	log.Info().
		Dur("interval", b.interval).
		Msg("registering light sensor binding")

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.pollOnce(ctx)

	for {
		select {
		case <-ticker.C:
			b.pollOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("unregistering light sensor binding")
			return
		}
	}
}

// pollOnce reads the sensor and submits the reading
func (b *SensorBinding) pollOnce(ctx context.Context) {
	lux, err := b.sensor.ReadLux(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read sensor")
		return
	}

	sample := domain.NewSample(b.now(), lux)
	if b.sink.SubmitSample(sample) {
		log.Debug().
			Int64("timestamp_ms", sample.TimestampMillis).
			Float64("lux", lux).
			Msg("accepted light sample")
	}
}
