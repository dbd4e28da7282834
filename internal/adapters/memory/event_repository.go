package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

// EventRepository implements domain.EventRepository with in-memory storage
// Events are lost on restart
type EventRepository struct {
	mu     sync.RWMutex
	events map[int64]*domain.LightEvent
	nextID int64
}

// NewEventRepository creates an empty in-memory repository
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[int64]*domain.LightEvent),
		nextID: 1,
	}
}

// SaveEvent stores an event in memory
func (r *EventRepository) SaveEvent(ctx context.Context, event *domain.LightEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == 0 {
		event.ID = r.nextID
		r.nextID++
	}

	r.events[event.ID] = event
	return nil
}

// GetEvent retrieves an event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.LightEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	return event, nil
}

// GetEventsInRange returns all events in [start, end), oldest first
func (r *EventRepository) GetEventsInRange(ctx context.Context, start, end time.Time) ([]*domain.LightEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*domain.LightEvent
	for _, event := range r.events {
		if !event.Timestamp.Before(start) && event.Timestamp.Before(end) {
			results = append(results, event)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return less(results[i], results[j])
	})

	return results, nil
}

// GetLatestEvents returns up to limit events, newest first
func (r *EventRepository) GetLatestEvents(ctx context.Context, limit int) ([]*domain.LightEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*domain.LightEvent, 0, len(r.events))
	for _, event := range r.events {
		results = append(results, event)
	}

	sort.Slice(results, func(i, j int) bool {
		return less(results[j], results[i])
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteOldEvents removes events older than specified duration
func (r *EventRepository) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	for id, event := range r.events {
		if event.Timestamp.Before(cutoff) {
			delete(r.events, id)
		}
	}

	return nil
}

// less orders by timestamp, then ID
func less(a, b *domain.LightEvent) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID < b.ID
	}
	return a.Timestamp.Before(b.Timestamp)
}

var _ domain.EventRepository = (*EventRepository)(nil)
