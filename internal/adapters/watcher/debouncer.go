package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single call.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	window   time.Duration
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer that calls callback once no trigger
// has arrived for window.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger restarts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire runs the callback for the timer armed as gen unless a later Trigger
// or Stop replaced it while it was waiting for the lock.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || d.gen != gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback()
	}
}

// Stop cancels any pending call. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
