package domain

import (
	"time"
)

// EventKind identifies which threshold a LightEvent crossed
type EventKind string

const (
	EventDark   EventKind = "dark"
	EventBright EventKind = "bright"
)

// KindFor maps the observer's dark flag to an EventKind
func KindFor(dark bool) EventKind {
	if dark {
		return EventDark
	}
	return EventBright
}

// ParseEventKind validates a stored or wire representation of an EventKind
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case EventDark, EventBright:
		return EventKind(s), nil
	}
	return "", ErrUnknownEventKind
}

// LightEvent is a recorded threshold crossing
type LightEvent struct {
	ID        int64
	Kind      EventKind
	Lux       float64
	Timestamp time.Time
}

// NewLightEvent creates an unsaved event
func NewLightEvent(dark bool, lux float64, at time.Time) *LightEvent {
	return &LightEvent{
		Kind:      KindFor(dark),
		Lux:       lux,
		Timestamp: at,
	}
}

// IsDark reports whether the event is a dark crossing
func (e *LightEvent) IsDark() bool {
	return e.Kind == EventDark
}
