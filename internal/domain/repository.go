package domain

import (
	"context"
	"time"
)

// EventRepository defines operations for storing/retrieving threshold events
// Implemented by the memory and SQLite adapters
type EventRepository interface {
	// SaveEvent persists an event and assigns its ID
	SaveEvent(ctx context.Context, event *LightEvent) error

	// GetEvent retrieves a specific event by ID
	GetEvent(ctx context.Context, id int64) (*LightEvent, error)

	// GetEventsInRange retrieves all events within time range, oldest first.
	// Uses a half-open interval: inclusive start, exclusive end [start, end).
	GetEventsInRange(ctx context.Context, start, end time.Time) ([]*LightEvent, error)

	// GetLatestEvents retrieves up to limit events, newest first
	GetLatestEvents(ctx context.Context, limit int) ([]*LightEvent, error)

	// DeleteOldEvents removes events older than specified duration
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) error
}
