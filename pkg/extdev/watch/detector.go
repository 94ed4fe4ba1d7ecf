package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/kluelabs/extdev/pkg/extdev/config"
	"github.com/kluelabs/extdev/pkg/extdev/logging"
)

// Options configures the detector behavior.
type Options struct {
	// Interval is the pause between poll cycles. Zero or negative uses
	// the configured default.
	Interval time.Duration

	// Clock supplies the ticker driving poll cycles. Nil uses the wall
	// clock; tests inject a virtual one.
	Clock Clock

	// OnChanges is called with each non-empty change set, from the
	// detector's own goroutine. Never called with an empty set.
	OnChanges func(ChangeSet)

	// OnReady is called once after the baseline snapshot is captured,
	// before the first poll cycle. The baseline itself is never
	// reported as changes.
	OnReady func(Stats)
}

// Validate checks the options and applies defaults in place.
func (o *Options) Validate() error {
	if o.Interval <= 0 {
		o.Interval = config.DefaultInterval
	}
	if o.Clock == nil {
		o.Clock = realClock{}
	}
	return nil
}

// Detector polls a watched tree and reports content changes between
// consecutive snapshots. State lives entirely inside Run; a detector can
// be run again after it returns.
type Detector struct {
	ws   *WatchSet
	opts Options
}

// NewDetector creates a detector for the given watch set.
// Options are validated and defaults are applied.
func NewDetector(ws *WatchSet, opts Options) *Detector {
	_ = opts.Validate()

	return &Detector{
		ws:   ws,
		opts: opts,
	}
}

// Run captures a baseline snapshot and then polls until ctx is canceled.
// Each cycle rebuilds the snapshot in full and diffs it against the
// previous one; a scan in progress always finishes before cancellation is
// observed. A failed baseline or rebuild is fatal. Cancellation returns
// nil.
func (d *Detector) Run(ctx context.Context) error {
	log := logging.Get("watch")

	previous, stats, err := build(d.ws)
	if err != nil {
		return fmt.Errorf("priming snapshot: %w", err)
	}
	log.Info("baseline captured",
		"root", d.ws.Root,
		"files", stats.Files,
		"unreadable", stats.Unreadable,
		"elapsed", stats.Elapsed)

	if d.opts.OnReady != nil {
		d.opts.OnReady(stats)
	}

	ticker := d.opts.Clock.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped", "root", d.ws.Root)
			return nil
		case <-ticker.C():
			current, stats, err := build(d.ws)
			if err != nil {
				return fmt.Errorf("rebuilding snapshot: %w", err)
			}

			changes := Diff(previous, current)
			log.Debug("cycle complete",
				"files", stats.Files,
				"changes", len(changes),
				"elapsed", stats.Elapsed)

			if len(changes) > 0 && d.opts.OnChanges != nil {
				d.opts.OnChanges(changes)
			}

			previous = current
		}
	}
}
