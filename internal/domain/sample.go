package domain

import "time"

const (
	// DefaultDarkLux is the illuminance at or below which light is "dark"
	DefaultDarkLux = 45.0

	// DefaultBrightLux is the illuminance at or above which light is "bright"
	DefaultBrightLux = 100.0

	// DefaultMinInterval is the minimum spacing between accepted samples
	DefaultMinInterval = 200 * time.Millisecond
)

// Sample is a single raw sensor reading
// TimestampMillis is a Unix timestamp in milliseconds
type Sample struct {
	TimestampMillis int64
	Lux             float64
}

// NewSample stamps a reading with the given time
func NewSample(at time.Time, lux float64) Sample {
	return Sample{
		TimestampMillis: at.UnixMilli(),
		Lux:             lux,
	}
}

// Thresholds holds the dark/bright boundaries in lux.
// No ordering is enforced between the two values.
type Thresholds struct {
	DarkLux   float64
	BrightLux float64
}

// DefaultThresholds returns 45 lux dark / 100 lux bright
func DefaultThresholds() Thresholds {
	return Thresholds{
		DarkLux:   DefaultDarkLux,
		BrightLux: DefaultBrightLux,
	}
}

// MonitorStatus is a read-only snapshot of a monitor's configuration and state
type MonitorStatus struct {
	Enabled               bool
	Thresholds            Thresholds
	MinInterval           time.Duration
	LastAcceptedTimestamp int64
}
