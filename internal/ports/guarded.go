package ports

import (
	"sync"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
)

// GuardedMonitor serializes access to an AmbientLightMonitor so the sensor
// binding and API handlers can share it.
// Observer callbacks run with the lock held and must not call back in.
type GuardedMonitor struct {
	mu      sync.Mutex
	monitor *domain.AmbientLightMonitor
}

// NewGuardedMonitor wraps monitor
func NewGuardedMonitor(monitor *domain.AmbientLightMonitor) *GuardedMonitor {
	return &GuardedMonitor{monitor: monitor}
}

// SubmitSample processes one sample and reports whether the rate limiter
// accepted it
func (g *GuardedMonitor) SubmitSample(s domain.Sample) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	accepted := g.monitor.Accepts(s)
	g.monitor.SubmitSample(s)
	return accepted
}

func (g *GuardedMonitor) SetThresholds(dark, bright float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.monitor.SetThresholds(dark, bright)
}

func (g *GuardedMonitor) SetDarkLux(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.monitor.SetDarkLux(v)
}

func (g *GuardedMonitor) SetBrightLux(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.monitor.SetBrightLux(v)
}

func (g *GuardedMonitor) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.monitor.SetEnabled(enabled)
}

func (g *GuardedMonitor) SetObserver(o domain.Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.monitor.SetObserver(o)
}

// Status returns a snapshot of the wrapped monitor
func (g *GuardedMonitor) Status() domain.MonitorStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.monitor.Status()
}
