package domain

import "time"

// MonitorConfig holds the initial settings of an AmbientLightMonitor
type MonitorConfig struct {
	Thresholds  Thresholds
	MinInterval time.Duration
	Enabled     bool
}

// DefaultMonitorConfig returns default thresholds, a 200ms interval and enabled=true
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Thresholds:  DefaultThresholds(),
		MinInterval: DefaultMinInterval,
		Enabled:     true,
	}
}

// AmbientLightMonitor turns a high-frequency stream of raw samples into
// rate-limited raw and threshold events for a single Observer.
//
// The monitor is not safe for concurrent use; callers sharing it between
// goroutines must serialize access (see ports.GuardedMonitor).
type AmbientLightMonitor struct {
	thresholds        Thresholds
	minIntervalMillis int64
	enabled           bool
	lastAccepted      int64
	observer          Observer
}

// NewAmbientLightMonitor creates a monitor with no observer attached
func NewAmbientLightMonitor(cfg MonitorConfig) *AmbientLightMonitor {
	return &AmbientLightMonitor{
		thresholds:        cfg.Thresholds,
		minIntervalMillis: cfg.MinInterval.Milliseconds(),
		enabled:           cfg.Enabled,
	}
}

// Accepts reports whether SubmitSample would accept s right now.
// Samples older than the last accepted one are always rejected, so the
// difference below never overflows and lastAccepted never moves back.
func (m *AmbientLightMonitor) Accepts(s Sample) bool {
	if !m.enabled {
		return false
	}
	if s.TimestampMillis < m.lastAccepted {
		return false
	}
	return s.TimestampMillis-m.lastAccepted >= m.minIntervalMillis
}

// SubmitSample processes one raw reading.
// Disabled monitors and samples arriving less than MinInterval after the
// last accepted one are ignored without touching any state.
func (m *AmbientLightMonitor) SubmitSample(s Sample) {
	if !m.Accepts(s) {
		return
	}
	m.lastAccepted = s.TimestampMillis

	if m.observer == nil {
		return
	}

	m.observer.OnRawSample(s.Lux)

	// dark wins when the thresholds overlap
	if s.Lux <= m.thresholds.DarkLux {
		m.observer.OnThresholdCrossed(true, s.Lux)
	} else if s.Lux >= m.thresholds.BrightLux {
		m.observer.OnThresholdCrossed(false, s.Lux)
	}
}

// SetThresholds replaces both thresholds
func (m *AmbientLightMonitor) SetThresholds(dark, bright float64) {
	m.thresholds = Thresholds{DarkLux: dark, BrightLux: bright}
}

// SetDarkLux replaces the dark threshold
func (m *AmbientLightMonitor) SetDarkLux(v float64) {
	m.thresholds.DarkLux = v
}

// SetBrightLux replaces the bright threshold
func (m *AmbientLightMonitor) SetBrightLux(v float64) {
	m.thresholds.BrightLux = v
}

// SetEnabled toggles sample processing. The rate limiter state is kept.
func (m *AmbientLightMonitor) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// SetObserver replaces the registered observer. nil detaches.
func (m *AmbientLightMonitor) SetObserver(o Observer) {
	m.observer = o
}

// Enabled reports whether samples are being processed
func (m *AmbientLightMonitor) Enabled() bool {
	return m.enabled
}

// Thresholds returns the current thresholds
func (m *AmbientLightMonitor) Thresholds() Thresholds {
	return m.thresholds
}

// Status returns a snapshot of configuration and rate limiter state
func (m *AmbientLightMonitor) Status() MonitorStatus {
	return MonitorStatus{
		Enabled:               m.enabled,
		Thresholds:            m.thresholds,
		MinInterval:           time.Duration(m.minIntervalMillis) * time.Millisecond,
		LastAcceptedTimestamp: m.lastAccepted,
	}
}
