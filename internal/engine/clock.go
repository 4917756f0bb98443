package engine

import "time"

// Ticker is the part of time.Ticker the engine needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers and tells the time. Tests swap in a manual clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
