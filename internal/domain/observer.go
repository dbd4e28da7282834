package domain

// Observer receives the events raised by an AmbientLightMonitor.
// Callbacks run synchronously on the goroutine that submitted the sample.
type Observer interface {
	// OnRawSample is called for every sample that passes the rate limiter
	OnRawSample(lux float64)

	// OnThresholdCrossed is called when a sample is at/below the dark
	// threshold (dark=true) or at/above the bright threshold (dark=false)
	OnThresholdCrossed(dark bool, lux float64)
}

// ObserverFuncs adapts plain functions to the Observer interface.
// Either field may be nil, in which case that event is ignored.
type ObserverFuncs struct {
	RawSample        func(lux float64)
	ThresholdCrossed func(dark bool, lux float64)
}

// OnRawSample implements Observer
func (f ObserverFuncs) OnRawSample(lux float64) {
	if f.RawSample != nil {
		f.RawSample(lux)
	}
}

// OnThresholdCrossed implements Observer
func (f ObserverFuncs) OnThresholdCrossed(dark bool, lux float64) {
	if f.ThresholdCrossed != nil {
		f.ThresholdCrossed(dark, lux)
	}
}

var _ Observer = ObserverFuncs{}
