package mock

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// FakeSensor simulates a light sensor for development
// This implements the ports.LightSensor interface
type FakeSensor struct {
	baseValue float64
	variation float64
}

// NewFakeSensor creates a sensor that returns values around baseValue
// variation: +/- range (e.g., 100 means 400-600 for a base of 500)
func NewFakeSensor(baseValue, variation float64) *FakeSensor {
	return &FakeSensor{
		baseValue: baseValue,
		variation: variation,
	}
}

// ReadLux returns a simulated light reading
func (s *FakeSensor) ReadLux(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	variance := (rand.Float64() - 0.5) * 2 * s.variation
	return clamp(s.baseValue + variance), nil
}

// Close is a no-op for fake sensor
func (s *FakeSensor) Close() error {
	return nil
}

// CycleSensor sweeps illuminance between min and max on a sine wave so
// a monitor sees both dark and bright crossings, e.g. a room where the
// lights are switched on and off
type CycleSensor struct {
	min, max float64
	period   time.Duration

	mu    sync.Mutex
	start time.Time
	now   func() time.Time
}

// NewCycleSensor creates a sensor whose reading starts at min and peaks
// at max half a period later
func NewCycleSensor(min, max float64, period time.Duration) *CycleSensor {
	return NewCycleSensorWithClock(min, max, period, time.Now)
}

// NewCycleSensorWithClock is NewCycleSensor with an injectable clock
func NewCycleSensorWithClock(min, max float64, period time.Duration, now func() time.Time) *CycleSensor {
	return &CycleSensor{
		min:    min,
		max:    max,
		period: period,
		start:  now(),
		now:    now,
	}
}

// ReadLux returns the reading for the current phase of the cycle
func (s *CycleSensor) ReadLux(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	elapsed := s.now().Sub(s.start)
	s.mu.Unlock()

	if s.period <= 0 {
		return clamp(s.min), nil
	}

	phase := 2 * math.Pi * float64(elapsed%s.period) / float64(s.period)
	mid := (s.max + s.min) / 2
	amp := (s.max - s.min) / 2
	return clamp(mid - amp*math.Cos(phase)), nil
}

// Close is a no-op for cycle sensor
func (s *CycleSensor) Close() error {
	return nil
}

func clamp(lux float64) float64 {
	if lux < 0 {
		return 0
	}
	return lux
}
