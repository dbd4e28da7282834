package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

// EventRepository implements domain.EventRepository with SQLite
// Timestamps are stored as Unix milliseconds
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a SQLite-backed repository
func NewEventRepository(dbPath string) (*EventRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS light_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		lux REAL NOT NULL,
		timestamp_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_light_events_timestamp ON light_events(timestamp_ms);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &EventRepository{db: db}, nil
}

// Close closes the underlying database
func (r *EventRepository) Close() error {
	return r.db.Close()
}

// SaveEvent stores an event in SQLite
func (r *EventRepository) SaveEvent(ctx context.Context, event *domain.LightEvent) error {
	query := `INSERT INTO light_events (kind, lux, timestamp_ms) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, string(event.Kind), event.Lux, event.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	event.ID = id
	return nil
}

// GetEvent retrieves an event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.LightEvent, error) {
	query := `SELECT id, kind, lux, timestamp_ms FROM light_events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return event, nil
}

// GetEventsInRange returns all events in [start, end), oldest first
func (r *EventRepository) GetEventsInRange(ctx context.Context, start, end time.Time) ([]*domain.LightEvent, error) {
	query := `
		SELECT id, kind, lux, timestamp_ms
		FROM light_events
		WHERE timestamp_ms >= ? AND timestamp_ms < ?
		ORDER BY timestamp_ms ASC, id ASC
	`

	return r.queryEvents(ctx, query, start.UnixMilli(), end.UnixMilli())
}

// GetLatestEvents returns up to limit events, newest first
func (r *EventRepository) GetLatestEvents(ctx context.Context, limit int) ([]*domain.LightEvent, error) {
	query := `
		SELECT id, kind, lux, timestamp_ms
		FROM light_events
		ORDER BY timestamp_ms DESC, id DESC
		LIMIT ?
	`

	return r.queryEvents(ctx, query, limit)
}

// DeleteOldEvents removes events older than specified duration
func (r *EventRepository) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	query := `DELETE FROM light_events WHERE timestamp_ms < ?`

	if _, err := r.db.ExecContext(ctx, query, cutoff.UnixMilli()); err != nil {
		return fmt.Errorf("failed to delete old events: %w", err)
	}

	return nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.LightEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.LightEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*domain.LightEvent, error) {
	var (
		event domain.LightEvent
		kind  string
		ms    int64
	)

	if err := s.Scan(&event.ID, &kind, &event.Lux, &ms); err != nil {
		return nil, err
	}

	k, err := domain.ParseEventKind(kind)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", event.ID, err)
	}
	event.Kind = k
	event.Timestamp = time.UnixMilli(ms)

	return &event, nil
}

var _ domain.EventRepository = (*EventRepository)(nil)
