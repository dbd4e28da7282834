package ports

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

const defaultSaveTimeout = 2 * time.Second

// EventRecorder is the Observer that persists threshold crossings and
// forwards monitor events to a Publisher
type EventRecorder struct {
	repo      domain.EventRepository
	publisher Publisher
	now       func() time.Time
	timeout   time.Duration

	latest atomic.Uint64 // math.Float64bits of the last raw lux
	seen   atomic.Bool
}

// NewEventRecorder creates a recorder; a nil publisher disables forwarding
func NewEventRecorder(repo domain.EventRepository, publisher Publisher) *EventRecorder {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &EventRecorder{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		timeout:   defaultSaveTimeout,
	}
}

// WithClock overrides the clock used to stamp events
func (r *EventRecorder) WithClock(now func() time.Time) *EventRecorder {
	r.now = now
	return r
}

// OnRawSample implements domain.Observer
func (r *EventRecorder) OnRawSample(lux float64) {
	r.latest.Store(math.Float64bits(lux))
	r.seen.Store(true)

	if err := r.publisher.PublishLux(lux); err != nil {
		log.Warn().Err(err).Float64("lux", lux).Msg("failed to publish illuminance")
	}
}

// OnThresholdCrossed implements domain.Observer
func (r *EventRecorder) OnThresholdCrossed(dark bool, lux float64) {
	event := domain.NewLightEvent(dark, lux, r.now())

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.repo.SaveEvent(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to save light event")
	} else {
		log.Info().
			Int64("id", event.ID).
			Str("kind", string(event.Kind)).
			Float64("lux", lux).
			Msg("recorded light event")
	}

	if err := r.publisher.PublishEvent(event); err != nil {
		log.Warn().Err(err).Str("kind", string(event.Kind)).Msg("failed to publish light event")
	}
}

// LatestLux returns the most recent accepted illuminance, if any
func (r *EventRecorder) LatestLux() (float64, bool) {
	if !r.seen.Load() {
		return 0, false
	}
	return math.Float64frombits(r.latest.Load()), true
}

// RunRetention deletes events older than maxAge every interval until ctx is cancelled
func (r *EventRecorder) RunRetention(ctx context.Context, every, maxAge time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.repo.DeleteOldEvents(ctx, maxAge); err != nil {
				log.Error().Err(err).Msg("failed to delete old light events")
			} else {
				log.Info().Dur("max_age", maxAge).Msg("deleted old light events")
			}

		case <-ctx.Done():
			return
		}
	}
}

var _ domain.Observer = (*EventRecorder)(nil)
