package watch

import "time"

// Clock abstracts ticker creation so tests can drive poll cycles without
// waiting on the wall clock.
type Clock interface {
	// NewTicker returns a ticker that fires every d.
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the detector needs.
type Ticker interface {
	// C returns the channel on which ticks are delivered.
	C() <-chan time.Time

	// Stop shuts the ticker down. It does not close the channel.
	Stop()
}

// realClock is the production Clock backed by the time package.
type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (rt *realTicker) C() <-chan time.Time { return rt.t.C }

func (rt *realTicker) Stop() { rt.t.Stop() }
