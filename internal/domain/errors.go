package domain

import "errors"

var (
	// ErrEventNotFound indicates requested event doesn't exist
	ErrEventNotFound = errors.New("event not found")

	// ErrUnknownEventKind indicates an event kind other than dark/bright
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")
)
