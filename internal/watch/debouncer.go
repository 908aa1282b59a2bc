package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into one reload. Only the last
// path seen within the interval is passed to the callback.
type Debouncer struct {
	interval time.Duration
	callback func(path string)
	logger   *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	lastPath string
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// firing callback. A nil logger falls back to slog.Default().
func NewDebouncer(interval time.Duration, callback func(path string), logger ...*slog.Logger) *Debouncer {
	d := &Debouncer{
		interval: interval,
		callback: callback,
		logger:   slog.Default(),
	}

	if len(logger) > 0 && logger[0] != nil {
		d.logger = logger[0]
	}

	return d
}

// Trigger records an event for path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastPath = path

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Pending reports whether a callback is scheduled but has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("reload callback panicked", slog.Any("error", r))
		}
	}()

	d.mu.Lock()
	path := d.lastPath
	d.timer = nil
	d.mu.Unlock()

	d.callback(path)
}
