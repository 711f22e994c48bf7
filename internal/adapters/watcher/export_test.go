package watcher

// Armed returns the generation of the most recently armed timer.
// This is exported for testing purposes only.
func (d *Debouncer) Armed() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Fire delivers the expiry of the timer armed as gen, as if it had been
// delayed behind a later Trigger or Stop.
// This is exported for testing purposes only.
func (d *Debouncer) Fire(gen uint64) {
	d.fire(gen)
}
